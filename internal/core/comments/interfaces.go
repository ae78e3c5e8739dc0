package comments

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service defines the business logic interface for comments
type Service interface {
	// CreateComment validates the body, verifies the parent post is
	// visible to the author and not expired, and inserts the comment
	// with its initial 7-day expiry.
	CreateComment(ctx context.Context, authorID, postID uuid.UUID, body string) (*CommentView, error)

	// ListForPost returns the live comments on a post visible to the
	// viewer, newest first, with the viewer's vote state attached.
	ListForPost(ctx context.Context, viewerID, postID uuid.UUID) ([]*CommentView, error)

	// Vote upserts the caller's vote on a comment. Insert, flip, and
	// remove all run in one transaction together with the counter
	// deltas, any upvote lifetime extension, and toxicity termination.
	Vote(ctx context.Context, callerID, commentID uuid.UUID, action VoteAction) (*VoteResult, error)
}

// Repository defines the data access interface for comments and votes
type Repository interface {
	// Create inserts the comment and increments the parent post's
	// denormalized comment counter in one transaction.
	Create(ctx context.Context, comment *Comment) error

	// ListForPost returns live (not soft-deleted, not expired as of now)
	// comments on the post, newest first, hydrated with the viewer's
	// vote direction.
	ListForPost(ctx context.Context, viewerID, postID uuid.UUID, now time.Time) ([]*ViewerComment, error)

	// ApplyVote performs the whole vote transaction: lock the comment
	// row, read the caller's prior vote, mutate the vote row, adjust
	// the denormalized counters, extend the comment's expiry on a net
	// new upvote, and soft-delete comment plus parent post when the
	// downvote count crosses the toxicity threshold. Votes on already
	// soft-deleted comments are still recorded but never re-fire the
	// termination.
	ApplyVote(ctx context.Context, callerID, commentID uuid.UUID, action VoteAction) (*VoteResult, error)
}
