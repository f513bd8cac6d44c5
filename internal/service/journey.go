package service

import (
	"context"
	"fmt"

	"github.com/larsenwood/easy-eea/internal/domain"
)

// TransitSearcher is the journey-search collaborator as the service sees it.
// Defining the interface here (in the consumer package) lets tests inject a
// canned search without an HTTP server.
type TransitSearcher interface {
	Search(ctx context.Context, from, to, when string, arrivalAnchored bool) ([]domain.TrainOption, error)
}

// FareResolver looks up reference fares for a leg. Satisfied by
// *refdata.Store.
type FareResolver interface {
	ResolveFare(origin, destination, mode string) (second, first float64, err error)
}

// ModeClassifier decides reduction capability for a commercial mode.
// Satisfied by *refdata.Classifier.
type ModeClassifier interface {
	Eligible(mode string) bool
}

// JourneyService wraps the raw transit search and annotates every returned
// leg with its eligibility flag and reference fares before anything else
// sees it.
type JourneyService struct {
	transit  TransitSearcher
	fares    FareResolver
	eligible ModeClassifier
}

// NewJourneyService constructs a JourneyService.
func NewJourneyService(transit TransitSearcher, fares FareResolver, eligible ModeClassifier) *JourneyService {
	return &JourneyService{transit: transit, fares: fares, eligible: eligible}
}

// Search returns candidate train options between two stop areas, each leg
// annotated with eligibility and second/first-class fares. An ineligible leg
// is forced to second class: reduction-ineligible travel is always priced and
// rendered at 2nd regardless of the traveler's preference.
func (s *JourneyService) Search(ctx context.Context, from, to, when string, arrivalAnchored bool) ([]domain.TrainOption, error) {
	options, err := s.transit.Search(ctx, from, to, when, arrivalAnchored)
	if err != nil {
		return nil, fmt.Errorf("service.JourneyService.Search: %w", err)
	}

	for i := range options {
		for j := range options[i].Legs {
			if err := s.annotate(&options[i].Legs[j]); err != nil {
				return nil, fmt.Errorf("service.JourneyService.Search: %w", err)
			}
		}
	}
	return options, nil
}

// annotate fills in the eligibility flag, the forced class, and the fares of
// a single leg.
func (s *JourneyService) annotate(leg *domain.TrainLeg) error {
	leg.Eligible = s.eligible.Eligible(leg.Mode)
	if !leg.Eligible {
		leg.ChosenClass = domain.ClassSecond
	}

	second, first, err := s.fares.ResolveFare(leg.From.Name, leg.To.Name, leg.Mode)
	if err != nil {
		return err
	}
	leg.FareSecond = second
	leg.FareFirst = first
	return nil
}
