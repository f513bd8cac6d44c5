package domain

import (
	"fmt"
	"time"
)

// RecurringTrip is a weekly travel habit: "every Monday at 07:15, home to
// study". DayOfWeek follows the calendar convention 0=Sunday .. 6=Saturday.
// ChosenOption is nil until the traveler picks a train for the habit.
type RecurringTrip struct {
	ID           string       `json:"id"`
	DayOfWeek    int          `json:"dayOfWeek"`
	Time         string       `json:"time"` // "HH:MM"
	FromHome     bool         `json:"fromHome"`
	ChosenOption *TrainOption `json:"chosenOption,omitempty"`
}

// Journey is one concrete dated instance of travel, derived from a
// RecurringTrip or added manually to a folder. Date is the intended travel
// day; the option's legs carry their own timestamps, which are authoritative
// for rendering.
type Journey struct {
	ID              string       `json:"id"`
	Date            time.Time    `json:"date"`
	RecurringTripID string       `json:"recurringTripId,omitempty"`
	Time            string       `json:"time,omitempty"`
	FromHome        bool         `json:"fromHome"`
	ChosenOption    *TrainOption `json:"chosenOption,omitempty"`
}

// JourneyID builds the stable identifier for the journey derived from trip
// tripID on the given day. Deterministic so repeated expansion of the same
// range is idempotent.
func JourneyID(day time.Time, tripID string) string {
	return fmt.Sprintf("journey-%s-%s", day.Format("2006-01-02"), tripID)
}
