package handlers

import (
	"net/http"

	"github.com/crucial707/exercise-tracker/internal/service"
	"github.com/go-chi/chi/v5"
)

// ExerciseHandler serves exercise creation and listing.
type ExerciseHandler struct {
	Tracker *service.Tracker
}

// CreateExercise logs an exercise for the user in the path. Body: {"description", "duration", "date"?}.
func (h *ExerciseHandler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r, "description", "duration", "date")
	if err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	exercise, err := h.Tracker.AddExercise(r.Context(), service.AddExerciseInput{
		UserID:      chi.URLParam(r, "id"),
		Description: fields["description"],
		Duration:    fields["duration"],
		Date:        fields["date"],
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, exercise)
}

// ListExercises returns every exercise.
func (h *ExerciseHandler) ListExercises(w http.ResponseWriter, r *http.Request) {
	list, err := h.Tracker.ListExercises(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}
