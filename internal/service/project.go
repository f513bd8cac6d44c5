package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/larsenwood/easy-eea/internal/domain"
	"github.com/larsenwood/easy-eea/internal/repo"
)

// ProjectService implements the travel-project lifecycle. Folders are
// generated exactly once: while a project has no attestation folders, its
// journeys are expanded fresh from the recurring trips and partitioned; once
// folders exist they are the durable source of truth and are only ever
// mutated through the explicit folder operations.
type ProjectService struct {
	repo     repo.ProjectRepo
	schedule *ScheduleService
	folders  *FolderService
}

// NewProjectService constructs a ProjectService.
func NewProjectService(r repo.ProjectRepo, schedule *ScheduleService, folders *FolderService) *ProjectService {
	return &ProjectService{repo: r, schedule: schedule, folders: folders}
}

// Create validates and persists a new project.
func (s *ProjectService) Create(ctx context.Context, p domain.TravelProject) (domain.TravelProject, error) {
	if err := validateProject(p); err != nil {
		return domain.TravelProject{}, fmt.Errorf("service.ProjectService.Create: %w", err)
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.TravelProject{}, fmt.Errorf("service.ProjectService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single project by ID.
func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (domain.TravelProject, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.TravelProject{}, fmt.Errorf("service.ProjectService.GetByID: %w", err)
	}
	return p, nil
}

// List returns all projects.
func (s *ProjectService) List(ctx context.Context) ([]domain.TravelProject, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ProjectService.List: %w", err)
	}
	return projects, nil
}

// Update validates and overwrites an existing project snapshot.
func (s *ProjectService) Update(ctx context.Context, p domain.TravelProject) (domain.TravelProject, error) {
	if err := validateProject(p); err != nil {
		return domain.TravelProject{}, fmt.Errorf("service.ProjectService.Update: %w", err)
	}
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return domain.TravelProject{}, fmt.Errorf("service.ProjectService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a project by ID.
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ProjectService.Delete: %w", err)
	}
	return nil
}

// EnsureFolders returns the project with its attestation folders, generating
// and persisting them on first access. Once generated, folders are never
// regenerated here — not even when recurring trips change afterwards.
func (s *ProjectService) EnsureFolders(ctx context.Context, id uuid.UUID) (domain.TravelProject, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.TravelProject{}, fmt.Errorf("service.ProjectService.EnsureFolders: %w", err)
	}
	if len(p.AttestationFolders) > 0 {
		return p, nil
	}

	journeys := s.schedule.ExpandJourneys(p.StartDate, p.EndDate, p.RecurringTrips)
	p.AttestationFolders = s.folders.Partition(journeys)

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return domain.TravelProject{}, fmt.Errorf("service.ProjectService.EnsureFolders: %w", err)
	}
	return updated, nil
}

// Folder returns one folder of a project.
func (s *ProjectService) Folder(ctx context.Context, id uuid.UUID, folderID string) (domain.AttestationFolder, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.AttestationFolder{}, fmt.Errorf("service.ProjectService.Folder: %w", err)
	}
	for _, f := range p.AttestationFolders {
		if f.ID == folderID {
			return f, nil
		}
	}
	return domain.AttestationFolder{}, fmt.Errorf("service.ProjectService.Folder: folder %s: %w", folderID, domain.ErrNotFound)
}

// AddFolder appends a new empty folder to the project.
func (s *ProjectService) AddFolder(ctx context.Context, id uuid.UUID) (domain.TravelProject, error) {
	return s.mutate(ctx, id, func(p *domain.TravelProject) error {
		p.AttestationFolders = s.folders.AddFolder(p.AttestationFolders)
		return nil
	})
}

// RenameFolder renames one folder of the project.
func (s *ProjectService) RenameFolder(ctx context.Context, id uuid.UUID, folderID, name string) (domain.TravelProject, error) {
	return s.mutate(ctx, id, func(p *domain.TravelProject) error {
		return s.folders.RenameFolder(p.AttestationFolders, folderID, name)
	})
}

// DeleteFolder removes one folder of the project; the last folder cannot be
// deleted.
func (s *ProjectService) DeleteFolder(ctx context.Context, id uuid.UUID, folderID string) (domain.TravelProject, error) {
	return s.mutate(ctx, id, func(p *domain.TravelProject) error {
		folders, err := s.folders.DeleteFolder(p.AttestationFolders, folderID)
		if err != nil {
			return err
		}
		p.AttestationFolders = folders
		return nil
	})
}

// AddTrip adds a journey to one folder of the project.
func (s *ProjectService) AddTrip(ctx context.Context, id uuid.UUID, folderID string, journey domain.Journey) (domain.TravelProject, error) {
	return s.mutate(ctx, id, func(p *domain.TravelProject) error {
		return s.folders.AddTrip(p.AttestationFolders, folderID, journey)
	})
}

// RemoveTrip removes a journey from one folder of the project.
func (s *ProjectService) RemoveTrip(ctx context.Context, id uuid.UUID, folderID, tripID string) (domain.TravelProject, error) {
	return s.mutate(ctx, id, func(p *domain.TravelProject) error {
		return s.folders.RemoveTrip(p.AttestationFolders, folderID, tripID)
	})
}

// MoveTrip transfers a journey between two folders of the project.
func (s *ProjectService) MoveTrip(ctx context.Context, id uuid.UUID, sourceID, targetID, tripID string) (domain.TravelProject, error) {
	return s.mutate(ctx, id, func(p *domain.TravelProject) error {
		return s.folders.MoveTrip(p.AttestationFolders, sourceID, targetID, tripID)
	})
}

// mutate loads the project, applies fn, and persists the result.
func (s *ProjectService) mutate(ctx context.Context, id uuid.UUID, fn func(*domain.TravelProject) error) (domain.TravelProject, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.TravelProject{}, fmt.Errorf("service.ProjectService: %w", err)
	}
	if err := fn(&p); err != nil {
		return domain.TravelProject{}, fmt.Errorf("service.ProjectService: %w", err)
	}
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return domain.TravelProject{}, fmt.Errorf("service.ProjectService: %w", err)
	}
	return updated, nil
}

// validateProject enforces the minimal shape every stored project must have.
func validateProject(p domain.TravelProject) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(p.HomeStation.Name) == "" || strings.TrimSpace(p.StudyStation.Name) == "" {
		return fmt.Errorf("%w: home and study stations are required", domain.ErrValidation)
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("%w: end date is before start date", domain.ErrValidation)
	}
	for _, trip := range p.RecurringTrips {
		if trip.DayOfWeek < 0 || trip.DayOfWeek > 6 {
			return fmt.Errorf("%w: day of week must be between 0 and 6", domain.ErrValidation)
		}
	}
	return nil
}
