package user

import (
	"encoding/json"
	"net/http"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/users"
)

// UpdateProfileHandler handles profile updates on the caller's own account
type UpdateProfileHandler struct {
	service users.Service
}

// NewUpdateProfileHandler creates a new update profile handler
func NewUpdateProfileHandler(service users.Service) *UpdateProfileHandler {
	return &UpdateProfileHandler{service: service}
}

// HandleUpdateProfile handles PATCH /api/v1/users/me
// JSON body with optional displayName and bio; absent fields are left
// unchanged.
func (h *UpdateProfileHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	if viewer == nil {
		handlers.WriteError(w, http.StatusUnauthorized, handlers.KindUnauthenticated,
			"Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)

	var req users.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput,
			"Invalid request body")
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), viewer.ID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, updated)
}
