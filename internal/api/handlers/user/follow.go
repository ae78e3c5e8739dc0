package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/follows"
)

// FollowHandler handles the idempotent follow and unfollow endpoints
type FollowHandler struct {
	service follows.Service
}

// NewFollowHandler creates a new follow handler
func NewFollowHandler(service follows.Service) *FollowHandler {
	return &FollowHandler{service: service}
}

// HandleFollow handles POST /api/v1/users/{id}/follow
func (h *FollowHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	if viewer == nil {
		handlers.WriteError(w, http.StatusUnauthorized, handlers.KindUnauthenticated,
			"Authentication required")
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput,
			"Invalid user id")
		return
	}

	result, err := h.service.Follow(r.Context(), viewer.ID, targetID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandleUnfollow handles DELETE /api/v1/users/{id}/follow
func (h *FollowHandler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	if viewer == nil {
		handlers.WriteError(w, http.StatusUnauthorized, handlers.KindUnauthenticated,
			"Authentication required")
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput,
			"Invalid user id")
		return
	}

	result, err := h.service.Unfollow(r.Context(), viewer.ID, targetID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
