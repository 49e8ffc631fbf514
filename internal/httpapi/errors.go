package httpapi

import (
	"encoding/json"
	"net/http"

	"agency/internal/ollama"
	"agency/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg, Code: status})
}

// writeServiceError maps inference-layer errors to HTTP responses and returns
// the status written. A zero return means the client is gone and nothing was
// written.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) int {
	// If context was canceled (client disconnect or shutdown), just return.
	if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
		return 0
	}
	if ollama.IsTooBusy(err) {
		IncrementBackpressure("admission")
		writeJSONError(w, http.StatusTooManyRequests, err.Error())
		return http.StatusTooManyRequests
	}
	if he, ok := err.(HTTPError); ok {
		writeJSONError(w, he.StatusCode(), he.Error())
		return he.StatusCode()
	}
	writeJSONError(w, http.StatusInternalServerError, err.Error())
	return http.StatusInternalServerError
}
