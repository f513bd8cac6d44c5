package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larsenwood/easy-eea/internal/domain"
	"github.com/larsenwood/easy-eea/internal/service"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// mondayCommute is the recurring pattern used across scheduling tests:
// every Monday morning, home to study.
func mondayCommute() domain.RecurringTrip {
	return domain.RecurringTrip{
		ID:        "trip-1",
		DayOfWeek: 1, // Monday (0=Sunday)
		Time:      "07:15",
		FromHome:  true,
	}
}

func TestExpandJourneys_CountsMatchingWeekdays(t *testing.T) {
	svc := service.NewScheduleService()

	// 2025-01-06 is a Monday; through 2025-04-06 there are 13 Mondays.
	journeys := svc.ExpandJourneys(day(2025, 1, 6), day(2025, 4, 6), []domain.RecurringTrip{mondayCommute()})

	require.Len(t, journeys, 13)
	for _, j := range journeys {
		assert.Equal(t, time.Monday, j.Date.Weekday())
		assert.Equal(t, "trip-1", j.RecurringTripID)
		assert.True(t, j.FromHome)
	}
	assert.Equal(t, day(2025, 1, 6).Format("2006-01-02"), journeys[0].Date.Format("2006-01-02"))
	assert.Equal(t, day(2025, 3, 31).Format("2006-01-02"), journeys[12].Date.Format("2006-01-02"))
}

func TestExpandJourneys_MultipleTripsSameDay(t *testing.T) {
	svc := service.NewScheduleService()

	outbound := mondayCommute()
	inbound := domain.RecurringTrip{ID: "trip-2", DayOfWeek: 1, Time: "18:00", FromHome: false}

	// A single Monday with two Monday habits yields two journeys, in the
	// order the trips were given.
	journeys := svc.ExpandJourneys(day(2025, 1, 6), day(2025, 1, 6), []domain.RecurringTrip{outbound, inbound})

	require.Len(t, journeys, 2)
	assert.Equal(t, "trip-1", journeys[0].RecurringTripID)
	assert.Equal(t, "trip-2", journeys[1].RecurringTripID)
}

func TestExpandJourneys_Idempotent(t *testing.T) {
	svc := service.NewScheduleService()
	trips := []domain.RecurringTrip{mondayCommute()}

	first := svc.ExpandJourneys(day(2025, 1, 6), day(2025, 2, 28), trips)
	second := svc.ExpandJourneys(day(2025, 1, 6), day(2025, 2, 28), trips)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestExpandJourneys_InclusiveBounds(t *testing.T) {
	svc := service.NewScheduleService()

	// Both endpoints are Mondays and both must be included.
	journeys := svc.ExpandJourneys(day(2025, 1, 6), day(2025, 1, 13), []domain.RecurringTrip{mondayCommute()})

	assert.Len(t, journeys, 2)
}

func TestExpandJourneys_StartAfterEnd(t *testing.T) {
	svc := service.NewScheduleService()

	journeys := svc.ExpandJourneys(day(2025, 4, 7), day(2025, 1, 6), []domain.RecurringTrip{mondayCommute()})

	assert.Empty(t, journeys)
}

func TestExpandJourneys_NoMatchingDay(t *testing.T) {
	svc := service.NewScheduleService()

	// Tuesday habit over a Monday-only range.
	trip := domain.RecurringTrip{ID: "trip-1", DayOfWeek: 2}
	journeys := svc.ExpandJourneys(day(2025, 1, 6), day(2025, 1, 6), []domain.RecurringTrip{trip})

	assert.Empty(t, journeys)
}
