package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for post operations
var (
	// ErrNotFound is returned when a post is missing, soft-deleted, or
	// not visible to the caller. Visibility mismatches deliberately
	// surface as not-found so existence is never disclosed.
	ErrNotFound = errors.New("post not found")

	// ErrForbidden is returned when the caller can see the post but is
	// not permitted to perform the operation (e.g. deleting another
	// author's post).
	ErrForbidden = errors.New("not permitted")

	// ErrPayloadTooLarge is returned when an upload exceeds MaxMediaBytes.
	ErrPayloadTooLarge = errors.New("media exceeds size limit")

	// ErrUnsupportedMedia is returned for non-video uploads.
	ErrUnsupportedMedia = errors.New("unsupported media type")
)

// ValidationError represents an invalid input with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
