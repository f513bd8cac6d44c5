package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Travel class codes as they appear on the wire and in project snapshots.
const (
	ClassFirst  = "1st"
	ClassSecond = "2nd"
)

// CompactTimeLayout is the timestamp format the journey search returns for
// leg departure and arrival times, e.g. "20250106T071500".
const CompactTimeLayout = "20060102T150405"

// compactTimeRe guards ParseCompactTime so that a malformed value fails fast
// with a recognizable error instead of whatever time.Parse reports.
var compactTimeRe = regexp.MustCompile(`^\d{8}T\d{6}$`)

// ParseCompactTime parses a compact "YYYYMMDDTHHMMSS" timestamp.
// A value that does not match the fixed format returns an error; callers
// rendering rows are expected to skip the offending leg, not abort.
func ParseCompactTime(s string) (time.Time, error) {
	if !compactTimeRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("malformed compact timestamp %q", s)
	}
	return time.Parse(CompactTimeLayout, s)
}

// TrainLeg is one train of a journey: a direct run between two stations on a
// single commercial service. Zero-duration technical transfers and sections
// with an empty commercial mode are dropped by the transit client and never
// become legs.
type TrainLeg struct {
	ID            string  `json:"id,omitempty"`
	From          Station `json:"from"`
	To            Station `json:"to"`
	DepartureTime string  `json:"departure_time"` // compact form, see CompactTimeLayout
	ArrivalTime   string  `json:"arrival_time"`
	Duration      int     `json:"duration"` // seconds
	TrainNumber   string  `json:"trainNumber,omitempty"`
	Mode          string  `json:"trainType"` // commercial mode, e.g. "TGV INOUI"

	// Eligible reports whether the leg's commercial mode can carry the EEA
	// reduction. Set during annotation, never by the transit client's caller.
	Eligible bool `json:"availableEEATrain"`

	// Fares in euros for the leg, 0 when unknown (absence = free/unknown is a
	// deliberate simplification inherited from the reference fare table).
	FareSecond float64 `json:"price2nd"`
	FareFirst  float64 `json:"price1st"`

	// ChosenClass is the traveler's class for this leg. An ineligible leg is
	// always forced to ClassSecond regardless of the requested class.
	ChosenClass string `json:"selectedClass,omitempty"`

	// Date is the intended travel day, stamped from the owning Journey when
	// legs are flattened for document assembly.
	Date time.Time `json:"date,omitempty"`
}

// TrainOption is one candidate journey returned by the search: an ordered
// sequence of 1..N legs, direct or connecting.
type TrainOption struct {
	ID            string     `json:"id"`
	DepartureTime string     `json:"departure_time"`
	ArrivalTime   string     `json:"arrival_time"`
	Duration      int        `json:"duration"` // seconds
	Legs          []TrainLeg `json:"trains"`
}
