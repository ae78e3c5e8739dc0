package post

import (
	"errors"
	"net/http"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/blobstore"
	"github.com/ember-social/ember/internal/core/posts"
)

// handleServiceError maps post service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, posts.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, handlers.KindNotFound,
			"Post not found")

	case errors.Is(err, posts.ErrForbidden):
		handlers.WriteError(w, http.StatusForbidden, handlers.KindForbidden,
			"You may only delete your own posts")

	case errors.Is(err, posts.ErrPayloadTooLarge):
		handlers.WriteError(w, http.StatusRequestEntityTooLarge, handlers.KindPayloadTooLarge,
			"Media exceeds the upload size limit")

	case errors.Is(err, posts.ErrUnsupportedMedia):
		handlers.WriteError(w, http.StatusUnsupportedMediaType, handlers.KindUnsupportedMedia,
			"Only video uploads are supported")

	case posts.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput, err.Error())

	case errors.Is(err, blobstore.ErrUnavailable):
		handlers.WriteError(w, http.StatusServiceUnavailable, handlers.KindStorageUnavailable,
			"Media storage is temporarily unavailable")

	default:
		handlers.WriteInternal(w, err)
	}
}
