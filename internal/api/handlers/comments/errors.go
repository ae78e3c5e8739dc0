package comments

import (
	"errors"
	"net/http"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/core/comments"
	"github.com/ember-social/ember/internal/core/posts"
)

// handleServiceError maps comment service errors to HTTP responses.
// Parent-post lookups surface posts errors here, so both taxonomies map.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, comments.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, handlers.KindNotFound,
			"Comment not found")

	case errors.Is(err, posts.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, handlers.KindNotFound,
			"Post not found")

	case errors.Is(err, comments.ErrInvalidAction):
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput,
			"direction must be one of: up, down, remove")

	case comments.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput, err.Error())

	default:
		handlers.WriteInternal(w, err)
	}
}
