package comments

import (
	"time"

	"github.com/google/uuid"
)

// Direction is a vote direction on a comment.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// VoteAction is what a caller may submit: a direction or an explicit
// removal of their vote.
type VoteAction string

const (
	VoteUp     VoteAction = "up"
	VoteDown   VoteAction = "down"
	VoteRemove VoteAction = "remove"
)

// Valid reports whether a is a known vote action.
func (a VoteAction) Valid() bool {
	return a == VoteUp || a == VoteDown || a == VoteRemove
}

// Comment is the stored form of a comment. The upvote/downvote counters are
// denormalized and must always equal the vote-table projection; every vote
// mutation adjusts them in the same transaction.
type Comment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PostID      uuid.UUID `json:"postId" db:"post_id"`
	AuthorID    uuid.UUID `json:"authorId" db:"author_id"`
	Body        string    `json:"body" db:"body"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt   time.Time `json:"expiresAt" db:"expires_at"`
	Upvotes     int       `json:"upvotes" db:"upvotes"`
	Downvotes   int       `json:"downvotes" db:"downvotes"`
	SoftDeleted bool      `json:"-" db:"soft_deleted"`
}

// ViewerComment is a comment row hydrated with viewer state.
type ViewerComment struct {
	Comment
	AuthorDisplayName string
	ViewerVote        *Direction
}

// CommentView is the per-viewer projection served to clients.
type CommentView struct {
	ID                uuid.UUID  `json:"id"`
	PostID            uuid.UUID  `json:"postId"`
	AuthorID          uuid.UUID  `json:"authorId"`
	AuthorDisplayName string     `json:"authorDisplayName"`
	Body              string     `json:"body"`
	Upvotes           int        `json:"upvotes"`
	Downvotes         int        `json:"downvotes"`
	NetVotes          int        `json:"netVotes"`
	ViewerVote        *Direction `json:"viewerVote"`
	CreatedAt         time.Time  `json:"createdAt"`
	ExpiresAt         time.Time  `json:"expiresAt"`
}

// VoteResult is the comment's vote state after a vote call.
type VoteResult struct {
	Upvotes         int        `json:"upvotes"`
	Downvotes       int        `json:"downvotes"`
	NetVotes        int        `json:"netVotes"`
	CallerDirection *Direction `json:"callerDirection"`
	// Terminated is set when this vote crossed the toxicity threshold
	// and soft-deleted the comment and its parent post.
	Terminated bool `json:"terminated,omitempty"`
}

// View builds the client projection from a hydrated row.
func (vc *ViewerComment) View() *CommentView {
	return &CommentView{
		ID:                vc.ID,
		PostID:            vc.PostID,
		AuthorID:          vc.AuthorID,
		AuthorDisplayName: vc.AuthorDisplayName,
		Body:              vc.Body,
		Upvotes:           vc.Upvotes,
		Downvotes:         vc.Downvotes,
		NetVotes:          vc.Upvotes - vc.Downvotes,
		ViewerVote:        vc.ViewerVote,
		CreatedAt:         vc.CreatedAt,
		ExpiresAt:         vc.ExpiresAt,
	}
}
