package handler

import (
	"encoding/json"
	"net/http"

	"github.com/larsenwood/easy-eea/internal/domain"
)

// CreateProject handles POST /projects.
func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	var p domain.TravelProject
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.projects.Create(r.Context(), p)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListProjects handles GET /projects.
func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if projects == nil {
		projects = []domain.TravelProject{}
	}

	writeJSON(w, http.StatusOK, projects)
}

// GetProject handles GET /projects/{id}. Reading a project is what triggers
// the one-time folder generation: the response always carries folders.
func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	p, err := s.projects.EnsureFolders(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// UpdateProject handles PUT /projects/{id}.
func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var p domain.TravelProject
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p.ID = id

	updated, err := s.projects.Update(r.Context(), p)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteProject handles DELETE /projects/{id}.
func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	if err := s.projects.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetFolder handles GET /projects/{id}/folders/{folderID}. The response wraps
// the folder with its lazily computed warning flag.
func (s *Server) GetFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	folder, err := s.projects.Folder(r.Context(), id, urlParam(r, "folderID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		domain.AttestationFolder
		Warning bool `json:"warning"`
	}{folder, folder.Warning()})
}

// AddFolder handles POST /projects/{id}/folders: appends a new empty folder.
func (s *Server) AddFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	p, err := s.projects.AddFolder(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// RenameFolder handles PATCH /projects/{id}/folders/{folderID}.
func (s *Server) RenameFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	p, err := s.projects.RenameFolder(r.Context(), id, urlParam(r, "folderID"), body.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// DeleteFolder handles DELETE /projects/{id}/folders/{folderID}.
// Deleting the last remaining folder is refused with a 400.
func (s *Server) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	p, err := s.projects.DeleteFolder(r.Context(), id, urlParam(r, "folderID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// AddTrip handles POST /projects/{id}/folders/{folderID}/trips.
func (s *Server) AddTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var journey domain.Journey
	if err := json.NewDecoder(r.Body).Decode(&journey); err != nil || journey.ID == "" {
		writeError(w, http.StatusBadRequest, "a journey with an id is required")
		return
	}

	p, err := s.projects.AddTrip(r.Context(), id, urlParam(r, "folderID"), journey)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// RemoveTrip handles DELETE /projects/{id}/folders/{folderID}/trips/{tripID}.
func (s *Server) RemoveTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	p, err := s.projects.RemoveTrip(r.Context(), id, urlParam(r, "folderID"), urlParam(r, "tripID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// MoveTrip handles POST /projects/{id}/trips/{tripID}/move: a targeted
// transfer of one trip between two folders of the project.
func (s *Server) MoveTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var body struct {
		SourceFolderID string `json:"sourceFolderId"`
		TargetFolderID string `json:"targetFolderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.SourceFolderID == "" || body.TargetFolderID == "" {
		writeError(w, http.StatusBadRequest, "sourceFolderId and targetFolderId are required")
		return
	}

	p, err := s.projects.MoveTrip(r.Context(), id, body.SourceFolderID, body.TargetFolderID, urlParam(r, "tripID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}
