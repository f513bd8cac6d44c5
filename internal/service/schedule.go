// Package service contains the business logic of the EasyEEA backend:
// calendar expansion, folder partitioning and mutation, journey annotation,
// attestation layout, and the project lifecycle. Services validate inputs,
// enforce the dossier rules, and orchestrate refdata/transit/repo calls.
package service

import (
	"time"

	"github.com/larsenwood/easy-eea/internal/domain"
)

// ScheduleService expands a weekly recurrence pattern into dated journeys.
type ScheduleService struct{}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService() *ScheduleService {
	return &ScheduleService{}
}

// ExpandJourneys walks every calendar day of [start, end] (inclusive, day
// boundaries normalized to 01:00:00–23:59:59) and emits one Journey per
// recurring trip whose weekday matches that day. Output is in day order with
// trips in their given order within a day; callers needing strict date order
// sort afterwards.
//
// Journey IDs are a deterministic function of (day, trip ID), so re-expanding
// the same range yields identical journeys. A start after end produces an
// empty sequence, not an error.
func (s *ScheduleService) ExpandJourneys(start, end time.Time, trips []domain.RecurringTrip) []domain.Journey {
	day := time.Date(start.Year(), start.Month(), start.Day(), 1, 0, 0, 0, start.Location())
	last := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())

	var journeys []domain.Journey
	for ; !day.After(last); day = day.AddDate(0, 0, 1) {
		weekday := int(day.Weekday()) // 0=Sunday, same convention as DayOfWeek
		for _, trip := range trips {
			if trip.DayOfWeek != weekday {
				continue
			}
			journeys = append(journeys, domain.Journey{
				ID:              domain.JourneyID(day, trip.ID),
				Date:            day,
				RecurringTripID: trip.ID,
				Time:            trip.Time,
				FromHome:        trip.FromHome,
				ChosenOption:    trip.ChosenOption,
			})
		}
	}
	return journeys
}
