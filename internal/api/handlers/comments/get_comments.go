package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/comments"
)

// ListHandler handles comment listing requests
type ListHandler struct {
	service comments.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service comments.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList handles GET /api/v1/posts/{id}/comments
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
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

	views, err := h.service.ListForPost(r.Context(), viewer.ID, postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"comments": views})
}
