package domain

import (
	"math"
	"sort"
	"time"
)

// Folder eligibility guidance from the EEA regulator: a dossier should hold
// at least MinFolderTrips journeys and span at most MaxFolderSpanDays days.
// Violations are surfaced as warnings, never enforced server-side.
const (
	MinFolderTrips    = 10
	MaxFolderSpanDays = 60
)

// AttestationFolder groups dated journeys into one reduction dossier.
// At creation time StartDate/EndDate are the min/max trip dates and the span
// is at most MaxFolderSpanDays. Manual edits (add/remove/move trip) may
// violate that invariant; the folder is never auto-repaired afterwards.
type AttestationFolder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Trips     []Journey `json:"trips"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// SortTrips restores the ascending-by-date ordering of the folder's trips.
// Every mutation of Trips must call this before the folder is handed back.
func (f *AttestationFolder) SortTrips() {
	sort.SliceStable(f.Trips, func(i, j int) bool {
		return f.Trips[i].Date.Before(f.Trips[j].Date)
	})
}

// SpanDays returns the folder's span in whole days, rounded up.
// It is measured over the current trips (min to max date) so that lazy
// warning checks observe manual-edit violations; when the folder holds no
// trips it falls back to the stored StartDate/EndDate.
func (f AttestationFolder) SpanDays() int {
	start, end := f.StartDate, f.EndDate
	if len(f.Trips) > 0 {
		start, end = f.Trips[0].Date, f.Trips[0].Date
		for _, t := range f.Trips[1:] {
			if t.Date.Before(start) {
				start = t.Date
			}
			if t.Date.After(end) {
				end = t.Date
			}
		}
	}
	return int(math.Ceil(end.Sub(start).Abs().Hours() / 24))
}

// Warning reports whether the folder currently violates the eligibility
// guidance (too few trips or too long a span). Detection is lazy: the check
// runs for display only and never triggers a repartition.
func (f AttestationFolder) Warning() bool {
	return len(f.Trips) < MinFolderTrips || f.SpanDays() > MaxFolderSpanDays
}
