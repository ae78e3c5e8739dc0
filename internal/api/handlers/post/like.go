package post

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/posts"
)

// LikeHandler handles the idempotent like and unlike endpoints
type LikeHandler struct {
	service posts.Service
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(service posts.Service) *LikeHandler {
	return &LikeHandler{service: service}
}

// HandleLike handles POST /api/v1/posts/{id}/like
func (h *LikeHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.service.Like)
}

// HandleUnlike handles DELETE /api/v1/posts/{id}/like
func (h *LikeHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.service.Unlike)
}

func (h *LikeHandler) handle(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, callerID, postID uuid.UUID) (*posts.LikeResult, error)) {
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

	result, err := op(r.Context(), viewer.ID, postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
