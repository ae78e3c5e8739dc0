package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/core/comments"
)

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

// Create inserts the comment and bumps the parent post's comment counter in
// one transaction.
func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin comment transaction: %w", err)
	}
	defer rollback(tx)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO comments (id, post_id, author_id, body, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		comment.ID, comment.PostID, comment.AuthorID, comment.Body,
		comment.CreatedAt, comment.ExpiresAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("parent post or author does not exist: %w", err)
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE posts SET comment_count = comment_count + 1 WHERE id = $1`, comment.PostID)
	if err != nil {
		return fmt.Errorf("failed to increment comment count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit comment: %w", err)
	}

	return nil
}

// ListForPost returns live comments on the post, newest first, hydrated
// with the viewer's vote direction via a LEFT JOIN.
func (r *postgresCommentRepo) ListForPost(ctx context.Context, viewerID, postID uuid.UUID, now time.Time) ([]*comments.ViewerComment, error) {
	query := `
		SELECT
			c.id, c.post_id, c.author_id, c.body, c.created_at, c.expires_at,
			c.upvotes, c.downvotes,
			u.display_name,
			v.direction
		FROM comments c
		JOIN users u ON u.id = c.author_id
		LEFT JOIN comment_votes v ON v.comment_id = c.id AND v.user_id = $1
		WHERE c.post_id = $2
			AND c.soft_deleted = FALSE
			AND c.expires_at > $3
		ORDER BY c.created_at DESC, c.id DESC`

	rows, err := r.db.QueryContext(ctx, query, viewerID, postID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*comments.ViewerComment
	for rows.Next() {
		vc := &comments.ViewerComment{}
		var direction sql.NullString
		err := rows.Scan(
			&vc.ID, &vc.PostID, &vc.AuthorID, &vc.Body, &vc.CreatedAt, &vc.ExpiresAt,
			&vc.Upvotes, &vc.Downvotes,
			&vc.AuthorDisplayName, &direction)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if direction.Valid {
			d := comments.Direction(direction.String)
			vc.ViewerVote = &d
		}
		result = append(result, vc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return result, nil
}

// ApplyVote runs the whole vote mutation as one transaction. The comment
// row is locked first so concurrent votes on the same comment serialize,
// then comments.TransitionVote decides the row change, counter deltas,
// expiry extension, and termination; this method only executes them.
// When a vote terminates the comment, the parent post is soft-deleted in
// the same transaction.
func (r *postgresCommentRepo) ApplyVote(ctx context.Context, callerID, commentID uuid.UUID, action comments.VoteAction) (*comments.VoteResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer rollback(tx)

	var postID uuid.UUID
	var state comments.VoteState
	err = tx.QueryRowContext(ctx, `
		SELECT post_id, created_at, expires_at, upvotes, downvotes, soft_deleted
		FROM comments
		WHERE id = $1
		FOR UPDATE`, commentID).
		Scan(&postID, &state.CreatedAt, &state.ExpiresAt, &state.Upvotes, &state.Downvotes, &state.SoftDeleted)
	if err == sql.ErrNoRows {
		return nil, comments.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock comment: %w", err)
	}

	var prior *comments.Direction
	var priorStr string
	err = tx.QueryRowContext(ctx,
		`SELECT direction FROM comment_votes WHERE user_id = $1 AND comment_id = $2`,
		callerID, commentID).Scan(&priorStr)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to read prior vote: %w", err)
	}
	if err == nil {
		d := comments.Direction(priorStr)
		prior = &d
	}

	t := comments.TransitionVote(state, prior, action)

	switch t.Row {
	case comments.VoteRowKeep:

	case comments.VoteRowInsert:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO comment_votes (user_id, comment_id, direction)
			VALUES ($1, $2, $3)`, callerID, commentID, string(*t.CallerDirection))
		if err != nil {
			if isForeignKeyViolation(err) {
				return nil, comments.ErrNotFound
			}
			return nil, fmt.Errorf("failed to insert vote: %w", err)
		}

	case comments.VoteRowUpdate:
		_, err = tx.ExecContext(ctx, `
			UPDATE comment_votes SET direction = $3
			WHERE user_id = $1 AND comment_id = $2`, callerID, commentID, string(*t.CallerDirection))
		if err != nil {
			return nil, fmt.Errorf("failed to flip vote: %w", err)
		}

	case comments.VoteRowDelete:
		_, err = tx.ExecContext(ctx,
			`DELETE FROM comment_votes WHERE user_id = $1 AND comment_id = $2`,
			callerID, commentID)
		if err != nil {
			return nil, fmt.Errorf("failed to delete vote: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE comments
		SET upvotes = $2, downvotes = $3, expires_at = $4, soft_deleted = $5
		WHERE id = $1`, commentID,
		t.State.Upvotes, t.State.Downvotes, t.State.ExpiresAt, t.State.SoftDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	if t.Terminated {
		_, err = tx.ExecContext(ctx, `
			UPDATE posts SET soft_deleted = TRUE
			WHERE id = $1 AND soft_deleted = FALSE`, postID)
		if err != nil {
			return nil, fmt.Errorf("failed to terminate parent post: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit vote: %w", err)
	}

	return t.Result(), nil
}
