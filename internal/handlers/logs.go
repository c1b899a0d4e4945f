package handlers

import (
	"net/http"

	"github.com/crucial707/exercise-tracker/internal/service"
	"github.com/go-chi/chi/v5"
)

// LogHandler serves exercise logs as {count, logs}.
type LogHandler struct {
	Tracker *service.Tracker
}

// UserLogs returns one user's log. Query: from, to (dates), limit (positive integer).
func (h *LogHandler) UserLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.serve(w, r, service.LogsInput{
		UserID:      chi.URLParam(r, "id"),
		From:        q.Get("from"),
		To:          q.Get("to"),
		Limit:       q.Get("limit"),
		RequireUser: true,
	})
}

// UserLogsRange returns one user's log between the {from} and {to} path dates.
func (h *LogHandler) UserLogsRange(w http.ResponseWriter, r *http.Request) {
	from, to := chi.URLParam(r, "from"), chi.URLParam(r, "to")
	if from == "" || to == "" {
		JSONValidationError(w, "Invalid date format for 'from' or 'to'", nil, http.StatusBadRequest)
		return
	}
	h.serve(w, r, service.LogsInput{
		UserID:      chi.URLParam(r, "id"),
		From:        from,
		To:          to,
		Limit:       r.URL.Query().Get("limit"),
		RequireUser: true,
	})
}

// AllLogs returns logs across every user. Query: from, to, limit.
func (h *LogHandler) AllLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.serve(w, r, service.LogsInput{
		From:  q.Get("from"),
		To:    q.Get("to"),
		Limit: q.Get("limit"),
	})
}

func (h *LogHandler) serve(w http.ResponseWriter, r *http.Request, in service.LogsInput) {
	res, err := h.Tracker.Logs(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
