package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/exercise-tracker/internal/apperr"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// ErrMessageTimeout is returned with 504 when storage did not answer in time.
const ErrMessageTimeout = "storage timeout"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// JSONValidationError sends a JSON error response with "error" and optional "fields" for field-level details.
// status is typically http.StatusBadRequest (400).
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	out := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	writeJSON(w, status, out)
}

// writeError maps an apperr kind to its status code. Storage failures are logged and hidden from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = &apperr.Error{Kind: apperr.KindUnknown}
	}

	switch ae.Kind {
	case apperr.KindValidation:
		JSONValidationError(w, ae.Message, ae.Fields, http.StatusBadRequest)
	case apperr.KindNotFound:
		JSONError(w, ae.Message, http.StatusNotFound)
	case apperr.KindConflict:
		JSONError(w, ae.Message, http.StatusConflict)
	case apperr.KindTimeout:
		slog.Warn("storage timeout",
			"request_id", chimw.GetReqID(r.Context()),
			"path", r.URL.Path,
			"error", err)
		JSONError(w, ErrMessageTimeout, http.StatusGatewayTimeout)
	default:
		slog.Error("request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"path", r.URL.Path,
			"error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
