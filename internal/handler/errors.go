package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/larsenwood/easy-eea/internal/domain"
)

// errorResponse is the wire shape of every error the API returns.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON serializes v with the given status. Encoding failures are
// swallowed: the status line has already been written and there is nothing
// useful left to tell the client.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the `{"error": message}` body the API promises.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError maps a service-layer error onto its HTTP status:
// not found 404, validation 400, upstream 502, everything else 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, unwrapMessage(err))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, unwrapMessage(err))
	case errors.Is(err, domain.ErrUpstream):
		writeError(w, http.StatusBadGateway, unwrapMessage(err))
	default:
		writeError(w, http.StatusInternalServerError, unwrapMessage(err))
	}
}

// unwrapMessage strips the layer-qualified wrapping prefixes
// ("service.ProjectService.Create: ...") so the client sees only the
// human-readable tail of the error chain.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for {
		i := strings.Index(msg, ": ")
		if i < 0 {
			return msg
		}
		prefix := msg[:i]
		if strings.ContainsAny(prefix, " {}") {
			// Not a qualifier like "service.ProjectService.Create" — stop.
			return msg
		}
		msg = msg[i+2:]
	}
}
