package posts

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service defines the business logic interface for posts
type Service interface {
	// CreatePost validates the request, uploads media to the blob store
	// when present (PUT first, insert second), and inserts the post row
	// with its initial 24h expiry.
	CreatePost(ctx context.Context, req CreatePostRequest) (*PostView, error)

	// GetPost returns the per-viewer projection of one live post.
	GetPost(ctx context.Context, viewerID, postID uuid.UUID) (*PostView, error)

	// DeletePost soft-deletes the caller's own post.
	DeletePost(ctx context.Context, callerID, postID uuid.UUID) error

	// Like / Unlike are idempotent; the denormalized counter moves in
	// the same transaction as the like row.
	Like(ctx context.Context, callerID, postID uuid.UUID) (*LikeResult, error)
	Unlike(ctx context.Context, callerID, postID uuid.UUID) (*LikeResult, error)

	// RecordView logs a view unless one exists for (caller, post) within
	// the dedup window. Views of posts the caller cannot see succeed
	// without mutating anything.
	RecordView(ctx context.Context, callerID, postID uuid.UUID) (*ViewResult, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a new post row.
	Create(ctx context.Context, post *Post) error

	// GetForViewer returns the post hydrated with viewer state, applying
	// the visibility predicate in the query. Soft-deleted or invisible
	// posts return ErrNotFound. Expired-but-unreaped rows are returned;
	// callers decide how expiry maps to their operation.
	GetForViewer(ctx context.Context, viewerID, postID uuid.UUID) (*ViewerPost, error)

	// SoftDelete marks the post deleted. Idempotent.
	SoftDelete(ctx context.Context, postID uuid.UUID) error

	// Like and Unlike maintain the like row and the denormalized counter
	// in one transaction. Both are idempotent and return the new count
	// and whether the caller currently likes the post.
	Like(ctx context.Context, userID, postID uuid.UUID) (likeCount int, liked bool, err error)
	Unlike(ctx context.Context, userID, postID uuid.UUID) (likeCount int, liked bool, err error)

	// RecordView inserts a view row unless one exists for (viewer, post)
	// after cutoff, incrementing the counter only on insert.
	RecordView(ctx context.Context, viewerID, postID uuid.UUID, cutoff time.Time) (viewCount int, counted bool, err error)
}
