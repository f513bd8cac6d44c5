package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larsenwood/easy-eea/internal/domain"
	"github.com/larsenwood/easy-eea/internal/repo"
	"github.com/larsenwood/easy-eea/internal/service"
)

type mockProjectRepo struct {
	createFn  func(ctx context.Context, p domain.TravelProject) (domain.TravelProject, error)
	getByIDFn func(ctx context.Context, id uuid.UUID) (domain.TravelProject, error)
	listFn    func(ctx context.Context) ([]domain.TravelProject, error)
	updateFn  func(ctx context.Context, p domain.TravelProject) (domain.TravelProject, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

var _ repo.ProjectRepo = (*mockProjectRepo)(nil)

func (m *mockProjectRepo) Create(ctx context.Context, p domain.TravelProject) (domain.TravelProject, error) {
	return m.createFn(ctx, p)
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TravelProject, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockProjectRepo) List(ctx context.Context) ([]domain.TravelProject, error) {
	return m.listFn(ctx)
}

func (m *mockProjectRepo) Update(ctx context.Context, p domain.TravelProject) (domain.TravelProject, error) {
	return m.updateFn(ctx, p)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func validProject() domain.TravelProject {
	return domain.TravelProject{
		ID:           uuid.New(),
		Name:         "Rennes - Paris 2025",
		HomeStation:  domain.Station{ID: "sa:1", Name: "Rennes"},
		StudyStation: domain.Station{ID: "sa:2", Name: "Paris Montparnasse"},
		StartDate:    day(2025, 1, 6),
		EndDate:      day(2025, 4, 6),
		RecurringTrips: []domain.RecurringTrip{
			{ID: "trip-1", DayOfWeek: 1, Time: "07:15", FromHome: true},
		},
	}
}

func newProjectService(r repo.ProjectRepo) *service.ProjectService {
	return service.NewProjectService(r, service.NewScheduleService(), service.NewFolderService())
}

func TestProjectCreate_Valid(t *testing.T) {
	p := validProject()
	r := &mockProjectRepo{
		createFn: func(_ context.Context, got domain.TravelProject) (domain.TravelProject, error) {
			got.CreatedAt = time.Now()
			return got, nil
		},
	}

	created, err := newProjectService(r).Create(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, p.Name, created.Name)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestProjectCreate_Validation(t *testing.T) {
	r := &mockProjectRepo{
		createFn: func(_ context.Context, p domain.TravelProject) (domain.TravelProject, error) {
			t.Fatal("repo must not be reached for an invalid project")
			return p, nil
		},
	}
	svc := newProjectService(r)

	cases := map[string]func(*domain.TravelProject){
		"missing name":         func(p *domain.TravelProject) { p.Name = "  " },
		"missing home station": func(p *domain.TravelProject) { p.HomeStation = domain.Station{} },
		"end before start":     func(p *domain.TravelProject) { p.EndDate = p.StartDate.AddDate(0, 0, -1) },
		"day of week out of range": func(p *domain.TravelProject) {
			p.RecurringTrips[0].DayOfWeek = 7
		},
	}
	for name, corrupt := range cases {
		t.Run(name, func(t *testing.T) {
			p := validProject()
			corrupt(&p)

			_, err := svc.Create(context.Background(), p)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestProjectGetByID_NotFound(t *testing.T) {
	r := &mockProjectRepo{
		getByIDFn: func(context.Context, uuid.UUID) (domain.TravelProject, error) {
			return domain.TravelProject{}, domain.ErrNotFound
		},
	}

	_, err := newProjectService(r).GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnsureFolders_GeneratesOnFirstAccess(t *testing.T) {
	p := validProject()
	var persisted *domain.TravelProject
	r := &mockProjectRepo{
		getByIDFn: func(context.Context, uuid.UUID) (domain.TravelProject, error) {
			return p, nil
		},
		updateFn: func(_ context.Context, got domain.TravelProject) (domain.TravelProject, error) {
			persisted = &got
			return got, nil
		},
	}

	result, err := newProjectService(r).EnsureFolders(context.Background(), p.ID)

	require.NoError(t, err)
	require.NotNil(t, persisted, "generated folders must be written back")
	// 13 Mondays over 06/01..06/04 partition into two 60-day folders.
	require.Len(t, result.AttestationFolders, 2)
	assert.Len(t, result.AttestationFolders[0].Trips, 9)
	assert.Len(t, result.AttestationFolders[1].Trips, 4)
	assert.Equal(t, "Dossier 1", result.AttestationFolders[0].Name)
}

func TestEnsureFolders_NeverRegenerates(t *testing.T) {
	p := validProject()
	p.AttestationFolders = []domain.AttestationFolder{
		{ID: "folder-1", Name: "Dossier 1", StartDate: p.StartDate, EndDate: p.EndDate},
	}
	r := &mockProjectRepo{
		getByIDFn: func(context.Context, uuid.UUID) (domain.TravelProject, error) {
			return p, nil
		},
		updateFn: func(_ context.Context, got domain.TravelProject) (domain.TravelProject, error) {
			t.Fatal("existing folders must not be rewritten")
			return got, nil
		},
	}

	result, err := newProjectService(r).EnsureFolders(context.Background(), p.ID)

	require.NoError(t, err)
	require.Len(t, result.AttestationFolders, 1)
	assert.Equal(t, "folder-1", result.AttestationFolders[0].ID)
}

func TestProjectFolder_NotFound(t *testing.T) {
	p := validProject()
	r := &mockProjectRepo{
		getByIDFn: func(context.Context, uuid.UUID) (domain.TravelProject, error) {
			return p, nil
		},
	}

	_, err := newProjectService(r).Folder(context.Background(), p.ID, "folder-404")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectDeleteFolder_LastFolderNotPersisted(t *testing.T) {
	p := validProject()
	p.AttestationFolders = []domain.AttestationFolder{{ID: "folder-1", Name: "Dossier 1"}}
	r := &mockProjectRepo{
		getByIDFn: func(context.Context, uuid.UUID) (domain.TravelProject, error) {
			return p, nil
		},
		updateFn: func(_ context.Context, got domain.TravelProject) (domain.TravelProject, error) {
			t.Fatal("a refused mutation must not be persisted")
			return got, nil
		},
	}

	_, err := newProjectService(r).DeleteFolder(context.Background(), p.ID, "folder-1")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProjectMoveTrip_PersistsMutation(t *testing.T) {
	p := validProject()
	p.AttestationFolders = []domain.AttestationFolder{
		{ID: "folder-1", Name: "Dossier 1", Trips: []domain.Journey{{ID: "j1", Date: day(2025, 1, 6)}}},
		{ID: "folder-2", Name: "Dossier 2"},
	}
	var persisted domain.TravelProject
	r := &mockProjectRepo{
		getByIDFn: func(context.Context, uuid.UUID) (domain.TravelProject, error) {
			return p, nil
		},
		updateFn: func(_ context.Context, got domain.TravelProject) (domain.TravelProject, error) {
			persisted = got
			return got, nil
		},
	}

	_, err := newProjectService(r).MoveTrip(context.Background(), p.ID, "folder-1", "folder-2", "j1")

	require.NoError(t, err)
	assert.Empty(t, persisted.AttestationFolders[0].Trips)
	require.Len(t, persisted.AttestationFolders[1].Trips, 1)
	assert.Equal(t, "j1", persisted.AttestationFolders[1].Trips[0].ID)
}
