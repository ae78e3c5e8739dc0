package feeds

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/core/posts"
)

// Service defines the business logic interface for feeds
type Service interface {
	// HomeFeed returns the chronological feed of posts visible to the
	// viewer: public posts, friends-only posts from mutual follows, and
	// the viewer's own posts.
	HomeFeed(ctx context.Context, viewerID uuid.UUID, cursor *string, limit int) (*FeedPage, error)

	// UserFeed returns the target user's live posts visible to the
	// viewer, chronological.
	UserFeed(ctx context.Context, viewerID, targetID uuid.UUID, cursor *string, limit int) (*UserFeedPage, error)
}

// Repository defines the data access interface for feed queries. Both
// queries apply the full visibility predicate in SQL and return limit+1
// rows so the caller can detect the next page without a second query.
type Repository interface {
	HomeFeed(ctx context.Context, viewerID uuid.UUID, cursor *Cursor, now time.Time, limit int) ([]*posts.ViewerPost, error)
	UserFeed(ctx context.Context, viewerID, targetID uuid.UUID, cursor *Cursor, now time.Time, limit int) ([]*posts.ViewerPost, error)
}
