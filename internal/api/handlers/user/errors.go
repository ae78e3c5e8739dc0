package user

import (
	"errors"
	"net/http"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/core/follows"
	"github.com/ember-social/ember/internal/core/users"
)

// handleServiceError maps user and follow service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, users.ErrNotFound), errors.Is(err, follows.ErrUserNotFound):
		handlers.WriteError(w, http.StatusNotFound, handlers.KindNotFound,
			"User not found")

	case errors.Is(err, follows.ErrSelfFollow):
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput,
			"You cannot follow yourself")

	case users.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput, err.Error())

	default:
		handlers.WriteInternal(w, err)
	}
}
