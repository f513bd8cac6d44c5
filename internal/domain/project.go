package domain

import (
	"time"

	"github.com/google/uuid"
)

// TravelProject is the aggregate root: one traveler's recurring pattern, the
// date range it applies to, and the attestation folders built from it.
// The whole project is persisted as a single snapshot; date-typed fields are
// reconstructed from their serialized form on load.
//
// Lifecycle: journeys are generated fresh from RecurringTrips only while
// AttestationFolders is empty. Once folders exist they are the durable source
// of truth and are never regenerated, only mutated explicitly.
type TravelProject struct {
	ID                 uuid.UUID           `json:"id"`
	Name               string              `json:"name"`
	HomeStation        Station             `json:"homeStation"`
	StudyStation       Station             `json:"studyStation"`
	RecurringTrips     []RecurringTrip     `json:"recurringTrips"`
	AttestationFolders []AttestationFolder `json:"attestationFolders"`
	StartDate          time.Time           `json:"startDate"`
	EndDate            time.Time           `json:"endDate"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}
