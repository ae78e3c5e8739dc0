package lifecycle

import "time"

// Lifetime policy constants. All expiry math in the service goes through
// this package so the rules stay testable in one place.
const (
	// PostTTL is the initial lifetime of a post.
	PostTTL = 24 * time.Hour

	// CommentTTL is the initial lifetime of a comment.
	CommentTTL = 7 * 24 * time.Hour

	// UpvoteExtension is added to a comment's expiry per upvote event.
	UpvoteExtension = 6 * time.Hour

	// ToxicityThreshold is the downvote count at which a comment is
	// terminated and its parent post is terminated with it.
	ToxicityThreshold = 5

	// MaxLifetime caps any entity's expiry at creation time plus 30 days,
	// no matter how many extensions it earns.
	MaxLifetime = 30 * 24 * time.Hour

	// ViewDedupWindow suppresses duplicate views from the same viewer.
	ViewDedupWindow = time.Hour
)

// Kind identifies which TTL applies to an entity.
type Kind int

const (
	KindPost Kind = iota
	KindComment
)

// Expirable is the snapshot the reaper decision needs.
type Expirable struct {
	ExpiresAt   time.Time
	SoftDeleted bool
}

// InitialExpiry returns the expiry assigned to a freshly created entity.
func InitialExpiry(kind Kind, createdAt time.Time) time.Time {
	if kind == KindComment {
		return createdAt.Add(CommentTTL)
	}
	return createdAt.Add(PostTTL)
}

// ApplyUpvote returns the expiry after one upvote event: the current expiry
// shifted by UpvoteExtension, capped at createdAt + MaxLifetime. Each upvote
// event is exactly one call; callers must not re-apply historical votes.
func ApplyUpvote(expiresAt, createdAt time.Time) time.Time {
	extended := expiresAt.Add(UpvoteExtension)
	limit := createdAt.Add(MaxLifetime)
	if extended.After(limit) {
		return limit
	}
	return extended
}

// ApplyDownvote reports whether a comment crossed the toxicity threshold.
// downvotes is the count after the increment has been applied.
func ApplyDownvote(downvotes int) bool {
	return downvotes >= ToxicityThreshold
}

// ShouldReap reports whether the reaper must soft-delete the entity.
// Already soft-deleted rows are never touched again. The reaper repository
// runs this predicate as SQL (soft_deleted = FALSE AND expires_at <= now)
// to sweep in bulk; this is the reference definition the tests pin down.
func ShouldReap(e Expirable, now time.Time) bool {
	return !e.SoftDeleted && !now.Before(e.ExpiresAt)
}
