package users

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic interface for users
type Service interface {
	// EnsureUser returns the local user for an external subject,
	// creating the row on first sight. Called on every authenticated
	// request by the auth middleware.
	EnsureUser(ctx context.Context, subject, email string) (*User, error)

	// GetProfile returns the per-viewer projection of a profile.
	GetProfile(ctx context.Context, viewerID, targetID uuid.UUID) (*Profile, error)

	// UpdateProfile updates the caller's own mutable fields.
	UpdateProfile(ctx context.Context, callerID uuid.UUID, req UpdateProfileRequest) (*User, error)
}

// Repository defines the data access interface for users
type Repository interface {
	// EnsureBySubject upserts a user row keyed on the unique external
	// subject and returns it. Concurrent first requests for the same
	// subject must converge on one row.
	EnsureBySubject(ctx context.Context, subject, displayName string) (*User, error)

	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// UpdateProfile applies non-nil fields and returns the updated row.
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error)

	// ProfileStats computes the public counters by query.
	ProfileStats(ctx context.Context, id uuid.UUID) (*ProfileStats, error)

	// IsFollowing reports whether follower follows followee; used for
	// the followed_by_viewer profile field.
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
}
