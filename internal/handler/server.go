// Package handler implements the HTTP handlers for the EasyEEA API.
// All handlers are methods on Server; methods are split into resource-specific
// files (health.go, project.go, journeys.go, attestation.go) but share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/larsenwood/easy-eea/internal/domain"
)

// ProjectServicer defines the business operations the project handlers depend
// on. Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type ProjectServicer interface {
	Create(ctx context.Context, p domain.TravelProject) (domain.TravelProject, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.TravelProject, error)
	List(ctx context.Context) ([]domain.TravelProject, error)
	Update(ctx context.Context, p domain.TravelProject) (domain.TravelProject, error)
	Delete(ctx context.Context, id uuid.UUID) error

	EnsureFolders(ctx context.Context, id uuid.UUID) (domain.TravelProject, error)
	Folder(ctx context.Context, id uuid.UUID, folderID string) (domain.AttestationFolder, error)
	AddFolder(ctx context.Context, id uuid.UUID) (domain.TravelProject, error)
	RenameFolder(ctx context.Context, id uuid.UUID, folderID, name string) (domain.TravelProject, error)
	DeleteFolder(ctx context.Context, id uuid.UUID, folderID string) (domain.TravelProject, error)
	AddTrip(ctx context.Context, id uuid.UUID, folderID string, journey domain.Journey) (domain.TravelProject, error)
	RemoveTrip(ctx context.Context, id uuid.UUID, folderID, tripID string) (domain.TravelProject, error)
	MoveTrip(ctx context.Context, id uuid.UUID, sourceID, targetID, tripID string) (domain.TravelProject, error)
}

// JourneySearcher is the annotated journey search as the handler sees it.
// Satisfied by *service.JourneyService.
type JourneySearcher interface {
	Search(ctx context.Context, from, to, when string, arrivalAnchored bool) ([]domain.TrainOption, error)
}

// AttestationBuilder lays journeys out into attestation documents.
// Satisfied by *service.AttestationService.
type AttestationBuilder interface {
	BuildDocuments(journeys []domain.Journey) []domain.AttestationDocument
}

// DocumentRenderer turns laid-out documents into one PDF byte stream.
// Satisfied by *pdf.Renderer.
type DocumentRenderer interface {
	Render(docs []domain.AttestationDocument) ([]byte, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	projects ProjectServicer
	journeys JourneySearcher
	builder  AttestationBuilder
	renderer DocumentRenderer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(projects ProjectServicer, journeys JourneySearcher, builder AttestationBuilder, renderer DocumentRenderer) *Server {
	return &Server{projects: projects, journeys: journeys, builder: builder, renderer: renderer}
}

// Routes registers every API endpoint on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.Health)

	r.Get("/sncf/journeys", s.SearchJourneys)
	r.Post("/attestations/generate", s.GenerateAttestation)

	r.Route("/projects", func(r chi.Router) {
		r.Post("/", s.CreateProject)
		r.Get("/", s.ListProjects)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetProject)
			r.Put("/", s.UpdateProject)
			r.Delete("/", s.DeleteProject)

			r.Post("/trips/{tripID}/move", s.MoveTrip)

			r.Route("/folders", func(r chi.Router) {
				r.Post("/", s.AddFolder)

				r.Route("/{folderID}", func(r chi.Router) {
					r.Get("/", s.GetFolder)
					r.Patch("/", s.RenameFolder)
					r.Delete("/", s.DeleteFolder)
					r.Get("/attestation", s.FolderAttestation)

					r.Post("/trips", s.AddTrip)
					r.Delete("/trips/{tripID}", s.RemoveTrip)
				})
			})
		})
	})
}

// urlUUID parses the {id} path parameter as a UUID.
func urlUUID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// urlParam is a thin alias to keep handlers free of direct chi references.
func urlParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
