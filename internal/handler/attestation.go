package handler

import (
	"encoding/json"
	"net/http"

	"github.com/larsenwood/easy-eea/internal/domain"
)

// generateRequest is the body of POST /attestations/generate. ValidityDate is
// required by the endpoint contract even though the printed validity window is
// recomputed per document from the journeys themselves.
type generateRequest struct {
	ValidityDate string           `json:"validityDate"`
	Journeys     []domain.Journey `json:"journeys"`
}

// GenerateAttestation handles POST /attestations/generate: it lays the posted
// journeys out into attestation documents and streams back one PDF. Missing
// required fields are a 400; a rendering failure is a 500 with the error
// message, never a partial document.
func (s *Server) GenerateAttestation(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ValidityDate == "" || len(req.Journeys) == 0 {
		writeError(w, http.StatusBadRequest, "validityDate and journeys are required")
		return
	}

	s.renderAttestation(w, req.Journeys)
}

// FolderAttestation handles GET /projects/{id}/folders/{folderID}/attestation:
// the end-to-end path from a stored folder to its rendered dossier.
func (s *Server) FolderAttestation(w http.ResponseWriter, r *http.Request) {
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

	s.renderAttestation(w, folder.Trips)
}

// renderAttestation builds and streams the PDF for a set of journeys.
func (s *Server) renderAttestation(w http.ResponseWriter, journeys []domain.Journey) {
	docs := s.builder.BuildDocuments(journeys)
	if len(docs) == 0 {
		writeError(w, http.StatusBadRequest, "no renderable journeys")
		return
	}

	out, err := s.renderer.Render(docs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, unwrapMessage(err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="attestation.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
