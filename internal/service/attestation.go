package service

import (
	"log/slog"
	"time"

	"github.com/larsenwood/easy-eea/internal/domain"
)

// rowsPerPage is how many journey lines fit on one certificate template page.
const rowsPerPage = 20

// AttestationService turns a folder's journeys into fully laid-out
// attestation documents. The split into eligible and ineligible legs is
// per-LEG, not per-journey: a connecting journey can contribute to both
// documents when its legs differ in eligibility.
type AttestationService struct {
	log *slog.Logger
}

// NewAttestationService constructs an AttestationService.
func NewAttestationService(log *slog.Logger) *AttestationService {
	return &AttestationService{log: log}
}

// BuildDocuments flattens the journeys' legs, buckets them (a leg with an
// ineligible mode or a zero second-class fare goes on the ineligible
// document), and lays each bucket out into pages. Buckets with no legs, or
// none with a usable date, are skipped with a log line — never an error.
// The eligible document always precedes the ineligible one in the result.
func (s *AttestationService) BuildDocuments(journeys []domain.Journey) []domain.AttestationDocument {
	var eligible, ineligible []domain.TrainLeg
	for _, j := range journeys {
		if j.ChosenOption == nil || len(j.ChosenOption.Legs) == 0 {
			continue
		}
		for _, leg := range j.ChosenOption.Legs {
			leg.Date = j.Date // the journey's intended travel day stamps the leg
			if !leg.Eligible || leg.FareSecond == 0 {
				ineligible = append(ineligible, leg)
			} else {
				eligible = append(eligible, leg)
			}
		}
	}

	var docs []domain.AttestationDocument
	if doc, ok := s.buildDocument(domain.DocumentEligible, eligible); ok {
		docs = append(docs, doc)
	}
	if doc, ok := s.buildDocument(domain.DocumentIneligible, ineligible); ok {
		docs = append(docs, doc)
	}
	return docs
}

// buildDocument lays one leg bucket out into a document.
//
// The validity start date printed on the document is the latest leg date in
// the bucket minus two months: the dossier's validity window is anchored to
// the most recent qualifying trip, back-dated by the statutory two months.
func (s *AttestationService) buildDocument(kind domain.DocumentKind, legs []domain.TrainLeg) (domain.AttestationDocument, bool) {
	if len(legs) == 0 {
		s.log.Warn("attestation document skipped: no legs", "kind", kind)
		return domain.AttestationDocument{}, false
	}

	latest, ok := latestDate(legs)
	if !ok {
		s.log.Warn("attestation document skipped: no dated legs", "kind", kind)
		return domain.AttestationDocument{}, false
	}

	rows := s.buildRows(legs)
	if len(rows) == 0 {
		s.log.Warn("attestation document skipped: no renderable rows", "kind", kind)
		return domain.AttestationDocument{}, false
	}

	return domain.AttestationDocument{
		Kind:         kind,
		ValidityDate: latest.AddDate(0, -2, 0),
		Pages:        paginate(rows),
	}, true
}

// buildRows converts legs to printable rows. A leg whose compact departure
// timestamp fails to parse loses only its own row: it is logged and skipped,
// the rest of the document proceeds.
func (s *AttestationService) buildRows(legs []domain.TrainLeg) []domain.AttestationRow {
	rows := make([]domain.AttestationRow, 0, len(legs))
	for _, leg := range legs {
		departure, err := domain.ParseCompactTime(leg.DepartureTime)
		if err != nil {
			s.log.Warn("attestation row skipped",
				"origin", leg.From.Name,
				"destination", leg.To.Name,
				"error", err,
			)
			continue
		}
		rows = append(rows, domain.AttestationRow{
			Date:        leg.Date,
			Origin:      leg.From.Name,
			Destination: leg.To.Name,
			Departure:   departure,
			Class:       leg.ChosenClass,
		})
	}
	return rows
}

// paginate chunks rows into pages of at most rowsPerPage, reverses the row
// order inside each chunk, then reverses the chunk order. The template
// renders rows bottom-up, so the very last chunk appears first, internally
// reversed; this layout quirk must be preserved bit-for-bit.
func paginate(rows []domain.AttestationRow) []domain.AttestationPage {
	var chunks [][]domain.AttestationRow
	for i := 0; i < len(rows); i += rowsPerPage {
		end := i + rowsPerPage
		if end > len(rows) {
			end = len(rows)
		}
		chunk := append([]domain.AttestationRow(nil), rows[i:end]...)
		for l, r := 0, len(chunk)-1; l < r; l, r = l+1, r-1 {
			chunk[l], chunk[r] = chunk[r], chunk[l]
		}
		chunks = append(chunks, chunk)
	}

	pages := make([]domain.AttestationPage, 0, len(chunks))
	for i := len(chunks) - 1; i >= 0; i-- {
		pages = append(pages, domain.AttestationPage{Rows: chunks[i]})
	}
	return pages
}

// latestDate returns the most recent leg date, ignoring legs with a zero
// (unparseable) date.
func latestDate(legs []domain.TrainLeg) (latest time.Time, ok bool) {
	for _, leg := range legs {
		if leg.Date.IsZero() {
			continue
		}
		if !ok || leg.Date.After(latest) {
			latest, ok = leg.Date, true
		}
	}
	return latest, ok
}
