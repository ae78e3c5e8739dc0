package users

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for user operations
var (
	// ErrNotFound is returned when a user does not exist.
	ErrNotFound = errors.New("user not found")
)

// User is a local account, created at most once per distinct external
// subject from the identity provider.
type User struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Subject       string    `json:"-" db:"subject"`
	DisplayName   string    `json:"displayName" db:"display_name"`
	Bio           *string   `json:"bio" db:"bio"`
	ProfilePublic bool      `json:"-" db:"profile_public"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// ProfileStats are the public counters on a profile, computed by query.
type ProfileStats struct {
	Posts     int `json:"posts"`
	Followers int `json:"followers"`
	Following int `json:"following"`
}

// Profile is the per-viewer projection of a user profile.
type Profile struct {
	ID               uuid.UUID `json:"id"`
	DisplayName      string    `json:"displayName"`
	Bio              *string   `json:"bio"`
	PostCount        int       `json:"postCount"`
	FollowerCount    int       `json:"followerCount"`
	FollowingCount   int       `json:"followingCount"`
	FollowedByViewer bool      `json:"followedByViewer"`
	// Editable marks the viewer's own profile; only then may the client
	// offer display name and bio editing.
	Editable bool `json:"editable"`
}

// UpdateProfileRequest carries the mutable profile fields. Nil fields are
// left unchanged.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
}
