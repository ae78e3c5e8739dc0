package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrUnavailable wraps transient blob store failures so callers can map
// them to a 503 without inspecting SDK error types.
var ErrUnavailable = errors.New("blob store unavailable")

// Store is opaque byte storage for uploaded media. Keys are generated by
// the caller and never assigned by the store.
type Store interface {
	// Put uploads size bytes read from r under key.
	Put(ctx context.Context, key string, r io.Reader, contentType string, size int64) error

	// URLFor returns a retrieval URL for a stored key. The URL may be a
	// CDN link or presigned; its lifetime is the store's concern.
	URLFor(ctx context.Context, key string) (string, error)

	// Delete removes a stored object. Used only by the out-of-band
	// orphan reclamation sweep, never on the request path.
	Delete(ctx context.Context, key string) error
}
