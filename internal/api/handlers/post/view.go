package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/posts"
)

// ViewHandler records post views
type ViewHandler struct {
	service posts.Service
}

// NewViewHandler creates a new view handler
func NewViewHandler(service posts.Service) *ViewHandler {
	return &ViewHandler{service: service}
}

// HandleView handles POST /api/v1/posts/{id}/view
// Views inside the dedup window and views of invisible posts both return
// success; the latter deliberately reveals nothing.
func (h *ViewHandler) HandleView(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.RecordView(r.Context(), viewer.ID, postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
