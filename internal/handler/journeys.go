package handler

import (
	"net/http"
)

// SearchJourneys handles GET /sncf/journeys.
//
// Query parameters: from and to (stop-area ids), when (compact timestamp the
// upstream search expects), and dateRepresents to anchor the search on the
// arrival time instead of the departure. Both dateRepresents=arrival and
// dateRepresents=true mean arrival-anchored: "arrival" is the upstream
// vocabulary, "true" is what the existing web client sends. Any other value
// (or none) anchors on the departure.
func (s *Server) SearchJourneys(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to, when := q.Get("from"), q.Get("to"), q.Get("when")
	if from == "" || to == "" || when == "" {
		writeError(w, http.StatusBadRequest, "from, to, and when are required")
		return
	}
	rep := q.Get("dateRepresents")
	arrivalAnchored := rep == "arrival" || rep == "true"

	options, err := s.journeys.Search(r.Context(), from, to, when, arrivalAnchored)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, options)
}
