package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/posts"
)

// DeleteHandler handles author-only post deletion
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{service: service}
}

// HandleDelete handles DELETE /api/v1/posts/{id}
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	if viewer == nil {
		handlers.WriteError(w, http.StatusUnauthorized, handlers.KindUnauthenticated,
			"Authentication required")
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput,
			"Invalid post id")
		return
	}

	if err := h.service.DeletePost(r.Context(), viewer.ID, postID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
