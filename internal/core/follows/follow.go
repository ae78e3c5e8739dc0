package follows

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for follow operations
var (
	// ErrUserNotFound is returned when the follow target does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
)

// Follow is a directed edge: follower follows followee. "Friends" means
// both directed edges exist.
type Follow struct {
	FollowerID uuid.UUID `json:"followerId" db:"follower_id"`
	FolloweeID uuid.UUID `json:"followeeId" db:"followee_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// FollowResult reports the state after a follow or unfollow.
type FollowResult struct {
	Action    string `json:"action"`
	Following bool   `json:"following"`
}
