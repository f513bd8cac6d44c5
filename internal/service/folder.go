package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/larsenwood/easy-eea/internal/domain"
)

// maxFolderSpan is the widest window a folder may cover at creation time,
// measured from its first (anchor) journey.
const maxFolderSpan = domain.MaxFolderSpanDays * 24 * time.Hour

// FolderService groups journeys into attestation folders and applies the
// manual folder operations. Partitioning runs exactly once per project; every
// later change goes through a mutation that never re-partitions and never
// re-validates the dossier rules (violations surface as lazy warnings).
type FolderService struct{}

// NewFolderService constructs a FolderService.
func NewFolderService() *FolderService {
	return &FolderService{}
}

// Partition groups journeys into the minimum number of contiguous folders
// under the fixed-anchor span rule: a folder accepts the next journey while
// it lies within 60 days of the folder's FIRST journey. The anchor never
// slides and closed folders are never revisited, so a smarter re-anchoring
// could occasionally produce fewer folders; the greedy behavior is the
// product contract.
//
// Folders are named sequentially ("Dossier 1", "Dossier 2", ...) with
// generation-order-stable IDs, and carry start/end = min/max member dates.
func (s *FolderService) Partition(journeys []domain.Journey) []domain.AttestationFolder {
	sorted := make([]domain.Journey, len(journeys))
	copy(sorted, journeys)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var folders []domain.AttestationFolder
	for i := 0; i < len(sorted); {
		anchor := sorted[i].Date
		end := i
		for end+1 < len(sorted) && sorted[end+1].Date.Sub(anchor) <= maxFolderSpan {
			end++
		}

		n := len(folders) + 1
		trips := append([]domain.Journey(nil), sorted[i:end+1]...)
		folders = append(folders, domain.AttestationFolder{
			ID:        fmt.Sprintf("folder-%d", n),
			Name:      fmt.Sprintf("Dossier %d", n),
			Trips:     trips,
			StartDate: trips[0].Date,
			EndDate:   trips[len(trips)-1].Date,
		})
		i = end + 1
	}
	return folders
}

// AddFolder appends a new empty folder. Its provisional window is today plus
// the maximum span; the window is cosmetic until trips are added.
func (s *FolderService) AddFolder(folders []domain.AttestationFolder) []domain.AttestationFolder {
	now := time.Now()
	n := len(folders) + 1
	return append(folders, domain.AttestationFolder{
		ID:        fmt.Sprintf("folder-%d-%d", n, now.UnixMilli()),
		Name:      fmt.Sprintf("Dossier %d", n),
		Trips:     []domain.Journey{},
		StartDate: now,
		EndDate:   now.Add(maxFolderSpan),
	})
}

// RenameFolder sets the display name of the identified folder.
func (s *FolderService) RenameFolder(folders []domain.AttestationFolder, folderID, name string) error {
	f := findFolder(folders, folderID)
	if f == nil {
		return fmt.Errorf("service.FolderService.RenameFolder: folder %s: %w", folderID, domain.ErrNotFound)
	}
	f.Name = name
	return nil
}

// DeleteFolder removes the identified folder. Deleting the last remaining
// folder is a validation error: a project always keeps at least one.
func (s *FolderService) DeleteFolder(folders []domain.AttestationFolder, folderID string) ([]domain.AttestationFolder, error) {
	if len(folders) == 1 && folders[0].ID == folderID {
		return nil, fmt.Errorf("service.FolderService.DeleteFolder: %w: cannot delete the last folder", domain.ErrValidation)
	}
	for i := range folders {
		if folders[i].ID == folderID {
			return append(folders[:i:i], folders[i+1:]...), nil
		}
	}
	return nil, fmt.Errorf("service.FolderService.DeleteFolder: folder %s: %w", folderID, domain.ErrNotFound)
}

// AddTrip inserts a journey into the identified folder, keeping the folder's
// trips date-sorted. The 60-day and 10-trip rules are deliberately NOT
// re-checked here.
func (s *FolderService) AddTrip(folders []domain.AttestationFolder, folderID string, journey domain.Journey) error {
	f := findFolder(folders, folderID)
	if f == nil {
		return fmt.Errorf("service.FolderService.AddTrip: folder %s: %w", folderID, domain.ErrNotFound)
	}
	for _, t := range f.Trips {
		if t.ID == journey.ID {
			return fmt.Errorf("service.FolderService.AddTrip: %w: trip %s already in folder", domain.ErrValidation, journey.ID)
		}
	}
	f.Trips = append(f.Trips, journey)
	f.SortTrips()
	return nil
}

// RemoveTrip deletes a journey from the identified folder.
func (s *FolderService) RemoveTrip(folders []domain.AttestationFolder, folderID, tripID string) error {
	f := findFolder(folders, folderID)
	if f == nil {
		return fmt.Errorf("service.FolderService.RemoveTrip: folder %s: %w", folderID, domain.ErrNotFound)
	}
	for i := range f.Trips {
		if f.Trips[i].ID == tripID {
			f.Trips = append(f.Trips[:i:i], f.Trips[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("service.FolderService.RemoveTrip: trip %s: %w", tripID, domain.ErrNotFound)
}

// MoveTrip transfers a journey from one folder to another, keeping both
// folders date-sorted. Moving a trip onto its own folder is a no-op. As with
// every manual operation, the dossier rules are not re-validated.
func (s *FolderService) MoveTrip(folders []domain.AttestationFolder, sourceID, targetID, tripID string) error {
	if sourceID == targetID {
		return nil
	}
	source := findFolder(folders, sourceID)
	if source == nil {
		return fmt.Errorf("service.FolderService.MoveTrip: folder %s: %w", sourceID, domain.ErrNotFound)
	}
	target := findFolder(folders, targetID)
	if target == nil {
		return fmt.Errorf("service.FolderService.MoveTrip: folder %s: %w", targetID, domain.ErrNotFound)
	}

	var journey *domain.Journey
	for i := range source.Trips {
		if source.Trips[i].ID == tripID {
			j := source.Trips[i]
			journey = &j
			source.Trips = append(source.Trips[:i:i], source.Trips[i+1:]...)
			break
		}
	}
	if journey == nil {
		return fmt.Errorf("service.FolderService.MoveTrip: trip %s: %w", tripID, domain.ErrNotFound)
	}
	source.SortTrips()

	for _, t := range target.Trips {
		if t.ID == tripID {
			// Already present in the target; the removal above still stands.
			return nil
		}
	}
	target.Trips = append(target.Trips, *journey)
	target.SortTrips()
	return nil
}

// findFolder returns a pointer into folders for the given ID, or nil.
func findFolder(folders []domain.AttestationFolder, id string) *domain.AttestationFolder {
	for i := range folders {
		if folders[i].ID == id {
			return &folders[i]
		}
	}
	return nil
}
