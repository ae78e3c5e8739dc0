package vote

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/comments"
)

// VoteHandler handles comment vote requests
type VoteHandler struct {
	service comments.Service
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(service comments.Service) *VoteHandler {
	return &VoteHandler{service: service}
}

// HandleVote handles POST /api/v1/comments/{id}/vote
// Form field direction is one of up, down, remove. Re-voting the same
// direction is a success, not a conflict.
func (h *VoteHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	if viewer == nil {
		handlers.WriteError(w, http.StatusUnauthorized, handlers.KindUnauthenticated,
			"Authentication required")
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput,
			"Invalid comment id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 4<<10)
	if err := r.ParseForm(); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput,
			"Invalid form body")
		return
	}

	action := comments.VoteAction(r.FormValue("direction"))
	result, err := h.service.Vote(r.Context(), viewer.ID, commentID, action)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// handleServiceError maps vote errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, comments.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, handlers.KindNotFound,
			"Comment not found")

	case errors.Is(err, comments.ErrInvalidAction):
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput,
			"direction must be one of: up, down, remove")

	default:
		handlers.WriteInternal(w, err)
	}
}
