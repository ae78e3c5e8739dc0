package comments

import (
	"time"

	"github.com/ember-social/ember/internal/core/lifecycle"
)

// VoteRowChange is the vote-row mutation a transition requires of storage.
type VoteRowChange int

const (
	// VoteRowKeep leaves the vote row as it is.
	VoteRowKeep VoteRowChange = iota

	// VoteRowInsert creates the caller's vote row.
	VoteRowInsert

	// VoteRowUpdate flips the existing row to the new direction.
	VoteRowUpdate

	// VoteRowDelete removes the caller's vote row.
	VoteRowDelete
)

// VoteState is the comment snapshot a vote transition starts from and the
// state it leaves behind.
type VoteState struct {
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Upvotes     int
	Downvotes   int
	SoftDeleted bool
}

// VoteTransition is the full outcome of one vote action: the vote-row
// mutation to perform, the comment state after it, the caller's resulting
// direction, and whether this vote terminated the comment.
type VoteTransition struct {
	Row             VoteRowChange
	State           VoteState
	CallerDirection *Direction
	Terminated      bool
}

// Result builds the client-facing vote result from the transition.
func (t VoteTransition) Result() *VoteResult {
	return &VoteResult{
		Upvotes:         t.State.Upvotes,
		Downvotes:       t.State.Downvotes,
		NetVotes:        t.State.Upvotes - t.State.Downvotes,
		CallerDirection: t.CallerDirection,
		Terminated:      t.Terminated,
	}
}

// TransitionVote computes the effect of action on top of the caller's
// prior vote. Pure; storage applies the returned row change and state
// inside one transaction. The caller's prior vote decides the deltas:
//
//	prior none  + up/down   -> insert row, counter +1
//	prior up    + down      -> flip row, upvotes -1, downvotes +1
//	prior down  + up        -> flip row, downvotes -1, upvotes +1
//	prior any   + remove    -> delete row, counter -1
//	prior == action         -> keep, current state returned
//
// A net new upvote (insert or flip to up) extends the expiry. A downvote
// that pushes the count across the toxicity threshold terminates the
// comment. Votes on already soft-deleted comments still move the tallies
// so they stay honest, but never extend the expiry or terminate again.
func TransitionVote(state VoteState, prior *Direction, action VoteAction) VoteTransition {
	t := VoteTransition{Row: VoteRowKeep, State: state, CallerDirection: prior}

	upvoteAdded := false
	downvoteAdded := false

	switch {
	// No-op cases: vote already in the requested state.
	case action == VoteRemove && prior == nil,
		action == VoteUp && prior != nil && *prior == DirectionUp,
		action == VoteDown && prior != nil && *prior == DirectionDown:
		return t

	case action == VoteRemove:
		t.Row = VoteRowDelete
		t.CallerDirection = nil
		if *prior == DirectionUp {
			t.State.Upvotes--
		} else {
			t.State.Downvotes--
		}

	case prior == nil:
		t.Row = VoteRowInsert
		d := Direction(action)
		t.CallerDirection = &d
		if action == VoteUp {
			t.State.Upvotes++
			upvoteAdded = true
		} else {
			t.State.Downvotes++
			downvoteAdded = true
		}

	default:
		// Flip between directions.
		t.Row = VoteRowUpdate
		d := Direction(action)
		t.CallerDirection = &d
		if action == VoteUp {
			t.State.Upvotes++
			t.State.Downvotes--
			upvoteAdded = true
		} else {
			t.State.Downvotes++
			t.State.Upvotes--
			downvoteAdded = true
		}
	}

	if upvoteAdded && !state.SoftDeleted {
		t.State.ExpiresAt = lifecycle.ApplyUpvote(state.ExpiresAt, state.CreatedAt)
	}

	if downvoteAdded && !state.SoftDeleted && lifecycle.ApplyDownvote(t.State.Downvotes) {
		t.Terminated = true
		t.State.SoftDeleted = true
	}

	return t
}
