package handlers

import (
	"net/http"

	"github.com/crucial707/exercise-tracker/internal/service"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Tracker *service.Tracker
}

// ==========================
// Create User
// ==========================
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r, "username")
	if err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	user, err := h.Tracker.CreateUser(r.Context(), fields["username"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// ==========================
// List Users
// ==========================
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Tracker.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
