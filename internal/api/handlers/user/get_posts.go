package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/api/handlers/feed"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/feeds"
)

// PostsHandler handles a user's post listing
type PostsHandler struct {
	service feeds.Service
}

// NewPostsHandler creates a new user posts handler
func NewPostsHandler(service feeds.Service) *PostsHandler {
	return &PostsHandler{service: service}
}

// HandleGetPosts handles GET /api/v1/users/{id}/posts
// Same pagination contract as the home feed, scoped to one author.
func (h *PostsHandler) HandleGetPosts(w http.ResponseWriter, r *http.Request) {
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

	cursor, limit, ok := feed.ParsePagination(w, r)
	if !ok {
		return
	}

	page, err := h.service.UserFeed(r.Context(), viewer.ID, targetID, cursor, limit)
	if err != nil {
		if errors.Is(err, feeds.ErrInvalidCursor) {
			handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput,
				"Invalid cursor")
			return
		}
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, page)
}
