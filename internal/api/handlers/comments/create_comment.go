package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/comments"
)

// CreateHandler handles comment creation requests
type CreateHandler struct {
	service comments.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service comments.Service) *CreateHandler {
	return &CreateHandler{service: service}
}

// HandleCreate handles POST /api/v1/posts/{id}/comments
// Accepts a form body with the comment text.
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
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

	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput,
			"Invalid form body")
		return
	}

	view, err := h.service.CreateComment(r.Context(), viewer.ID, postID, r.FormValue("body"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, view)
}
