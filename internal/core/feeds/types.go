package feeds

import (
	"errors"

	"github.com/ember-social/ember/internal/core/posts"
)

// DefaultLimit and MaxLimit bound feed page sizes.
const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// ErrInvalidCursor is returned for cursors that fail decoding or signature
// verification. Maps to 400.
var ErrInvalidCursor = errors.New("invalid cursor")

// FeedPage is one page of per-viewer post projections plus the opaque
// cursor for the next page. Cursor is nil on the last page.
type FeedPage struct {
	Items  []*posts.PostView `json:"items"`
	Cursor *string           `json:"cursor"`
}

// UserFeedPage is a user's feed plus a minimal header about the author.
type UserFeedPage struct {
	User   *FeedUser         `json:"user"`
	Items  []*posts.PostView `json:"items"`
	Cursor *string           `json:"cursor"`
}

// FeedUser is the minimal author header on a user feed.
type FeedUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}
