// Package transit is the HTTP client for the SNCF journey-search collaborator
// (Navitia). The core treats the search as a black box returning candidate
// train options; eligibility and fares are annotated later by the service
// layer, never here.
package transit

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/larsenwood/easy-eea/internal/domain"
)

// DefaultBaseURL is the public Navitia API root.
const DefaultBaseURL = "https://api.navitia.io/v1/"

// Client calls the Navitia journeys endpoint for the SNCF coverage.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a Client for the given API root and key.
// An empty baseURL falls back to DefaultBaseURL. The key may be empty; Search
// then fails with domain.ErrUpstream instead of sending doomed requests.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// journeysResponse mirrors the slice of the Navitia payload this client reads.
type journeysResponse struct {
	Journeys []struct {
		ID                string    `json:"id"`
		DepartureDateTime string    `json:"departure_date_time"`
		ArrivalDateTime   string    `json:"arrival_date_time"`
		Duration          int       `json:"duration"`
		Sections          []section `json:"sections"`
	} `json:"journeys"`
}

type section struct {
	Duration            int       `json:"duration"`
	DepartureDateTime   string    `json:"departure_date_time"`
	ArrivalDateTime     string    `json:"arrival_date_time"`
	From                stopPoint `json:"from"`
	To                  stopPoint `json:"to"`
	DisplayInformations struct {
		CommercialMode string `json:"commercial_mode"`
		Headsign       string `json:"headsign"`
		Code           string `json:"code"`
	} `json:"display_informations"`
}

type stopPoint struct {
	StopPoint struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"stop_point"`
}

// Search queries journeys between two stop areas around the given local
// datetime (ISO form, e.g. "2025-10-07T15:30"). When arrivalAnchored is true
// the datetime is the desired arrival, otherwise the departure.
//
// Sections with zero duration or an empty commercial mode are technical
// transfers, not travel, and never become legs.
func (c *Client) Search(ctx context.Context, from, to, when string, arrivalAnchored bool) ([]domain.TrainOption, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("transit.Client.Search: SNCF_API_KEY not configured: %w", domain.ErrUpstream)
	}

	represents := "departure"
	if arrivalAnchored {
		represents = "arrival"
	}
	params := url.Values{
		"from":                []string{from},
		"to":                  []string{to},
		"datetime":            []string{when},
		"depth":               []string{"3"},
		"min_nb_journeys":     []string{"5"},
		"datetime_represents": []string{represents},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"coverage/sncf/journeys?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("transit.Client.Search: %w", err)
	}
	req.Header.Set("Authorization",
		"Basic "+base64.StdEncoding.EncodeToString([]byte(c.apiKey+":")))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transit.Client.Search: %v: %w", err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transit.Client.Search: SNCF API status %s: %w", resp.Status, domain.ErrUpstream)
	}

	var payload journeysResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("transit.Client.Search: decode: %v: %w", err, domain.ErrUpstream)
	}

	options := make([]domain.TrainOption, 0, len(payload.Journeys))
	for _, jn := range payload.Journeys {
		opt := domain.TrainOption{
			ID:            jn.ID,
			DepartureTime: jn.DepartureDateTime,
			ArrivalTime:   jn.ArrivalDateTime,
			Duration:      jn.Duration,
		}
		for _, sec := range jn.Sections {
			if sec.Duration == 0 || sec.DisplayInformations.CommercialMode == "" {
				continue
			}
			opt.Legs = append(opt.Legs, sectionToLeg(sec))
		}
		options = append(options, opt)
	}
	return options, nil
}

// sectionToLeg maps one Navitia section onto a domain leg.
// Eligibility, fares, and class are left at their zero values for the service
// layer to fill in.
func sectionToLeg(sec section) domain.TrainLeg {
	number := sec.DisplayInformations.Headsign
	if number == "" {
		number = sec.DisplayInformations.Code
	}
	return domain.TrainLeg{
		From: domain.Station{
			ID:   sec.From.StopPoint.ID,
			Name: sec.From.StopPoint.Name,
		},
		To: domain.Station{
			ID:   sec.To.StopPoint.ID,
			Name: sec.To.StopPoint.Name,
		},
		DepartureTime: sec.DepartureDateTime,
		ArrivalTime:   sec.ArrivalDateTime,
		Duration:      sec.Duration,
		TrainNumber:   number,
		Mode:          sec.DisplayInformations.CommercialMode,
	}
}
