package follows

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic interface for the follow relation
type Service interface {
	// Follow creates the directed edge follower -> followee. Idempotent.
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) (*FollowResult, error)

	// Unfollow removes the edge. Idempotent.
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) (*FollowResult, error)
}

// Repository defines the data access interface for follows
type Repository interface {
	// Follow inserts the edge; inserting an existing edge is a no-op.
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error

	// Unfollow deletes the edge; deleting a missing edge is a no-op.
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error

	// IsFollowing reports whether the directed edge exists.
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)

	// IsFriend reports whether both directed edges exist. The request-path
	// friendship checks run inside the SQL visibility predicate; this is
	// the same test as a standalone query.
	IsFriend(ctx context.Context, a, b uuid.UUID) (bool, error)
}
