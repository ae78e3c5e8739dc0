package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ember-social/ember/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post row. Counters start at their schema defaults.
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (id, author_id, body, media_key, visibility, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.AuthorID, post.Body, post.MediaKey,
		post.Visibility, post.CreatedAt, post.ExpiresAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("author does not exist: %w", err)
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// GetForViewer returns the post hydrated with viewer state. The visibility
// predicate runs in the query, so an invisible post and a missing post are
// the same ErrNotFound. Expired-but-unreaped rows are returned; callers map
// expiry to their operation's semantics.
func (r *postgresPostRepo) GetForViewer(ctx context.Context, viewerID, postID uuid.UUID) (*posts.ViewerPost, error) {
	query := fmt.Sprintf(`
		SELECT
			p.id, p.author_id, p.body, p.media_key, p.visibility,
			p.created_at, p.expires_at, p.soft_deleted,
			p.view_count, p.like_count, p.comment_count,
			u.display_name,
			EXISTS (
				SELECT 1 FROM post_likes pl
				WHERE pl.post_id = p.id AND pl.user_id = $1
			) AS liked_by_viewer
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $2 AND %s`, visibilityFilter(1))

	vp := &posts.ViewerPost{}
	var mediaKey sql.NullString
	err := r.db.QueryRowContext(ctx, query, viewerID, postID).Scan(
		&vp.ID, &vp.AuthorID, &vp.Body, &mediaKey, &vp.Visibility,
		&vp.CreatedAt, &vp.ExpiresAt, &vp.SoftDeleted,
		&vp.ViewCount, &vp.LikeCount, &vp.CommentCount,
		&vp.AuthorDisplayName, &vp.LikedByViewer)

	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	vp.MediaKey = nullStringPtr(mediaKey)
	return vp, nil
}

// SoftDelete marks the post deleted. Idempotent: deleting an already
// deleted post affects no rows and is not an error.
func (r *postgresPostRepo) SoftDelete(ctx context.Context, postID uuid.UUID) error {
	query := `
		UPDATE posts
		SET soft_deleted = TRUE
		WHERE id = $1 AND soft_deleted = FALSE`

	if _, err := r.db.ExecContext(ctx, query, postID); err != nil {
		return fmt.Errorf("failed to soft-delete post: %w", err)
	}

	return nil
}

// Like inserts the like row and bumps the denormalized counter in one
// transaction. Liking a post twice is a no-op that returns the current
// state.
func (r *postgresPostRepo) Like(ctx context.Context, userID, postID uuid.UUID) (int, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin like transaction: %w", err)
	}
	defer rollback(tx)

	result, err := tx.ExecContext(ctx, `
		INSERT INTO post_likes (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, post_id) DO NOTHING`, userID, postID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, false, posts.ErrNotFound
		}
		return 0, false, fmt.Errorf("failed to insert like: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("failed to check like result: %w", err)
	}

	if inserted == 1 {
		if _, err := tx.ExecContext(ctx,
			`UPDATE posts SET like_count = like_count + 1 WHERE id = $1`, postID); err != nil {
			return 0, false, fmt.Errorf("failed to increment like count: %w", err)
		}
	}

	var count int
	err = tx.QueryRowContext(ctx, `SELECT like_count FROM posts WHERE id = $1`, postID).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, false, posts.ErrNotFound
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read like count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit like: %w", err)
	}

	return count, true, nil
}

// Unlike removes the like row and decrements the counter in one
// transaction. Unliking a post that was never liked is a no-op.
func (r *postgresPostRepo) Unlike(ctx context.Context, userID, postID uuid.UUID) (int, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin unlike transaction: %w", err)
	}
	defer rollback(tx)

	result, err := tx.ExecContext(ctx,
		`DELETE FROM post_likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to delete like: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("failed to check unlike result: %w", err)
	}

	if deleted == 1 {
		if _, err := tx.ExecContext(ctx,
			`UPDATE posts SET like_count = like_count - 1 WHERE id = $1`, postID); err != nil {
			return 0, false, fmt.Errorf("failed to decrement like count: %w", err)
		}
	}

	var count int
	err = tx.QueryRowContext(ctx, `SELECT like_count FROM posts WHERE id = $1`, postID).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, false, posts.ErrNotFound
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read like count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit unlike: %w", err)
	}

	return count, false, nil
}

// RecordView upserts the (viewer, post) view marker. The WHERE clause on
// the conflict update skips rows whose last view is inside the dedup
// window, so only the insert or a stale-marker refresh counts as a view.
func (r *postgresPostRepo) RecordView(ctx context.Context, viewerID, postID uuid.UUID, cutoff time.Time) (int, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin view transaction: %w", err)
	}
	defer rollback(tx)

	result, err := tx.ExecContext(ctx, `
		INSERT INTO post_views (user_id, post_id, viewed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, post_id) DO UPDATE SET viewed_at = NOW()
		WHERE post_views.viewed_at <= $3`, viewerID, postID, cutoff)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, false, posts.ErrNotFound
		}
		return 0, false, fmt.Errorf("failed to record view: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("failed to check view result: %w", err)
	}
	counted := affected == 1

	if counted {
		if _, err := tx.ExecContext(ctx,
			`UPDATE posts SET view_count = view_count + 1 WHERE id = $1`, postID); err != nil {
			return 0, false, fmt.Errorf("failed to increment view count: %w", err)
		}
	}

	var count int
	err = tx.QueryRowContext(ctx, `SELECT view_count FROM posts WHERE id = $1`, postID).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, false, posts.ErrNotFound
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read view count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit view: %w", err)
	}

	return count, counted, nil
}

// isForeignKeyViolation reports whether err is a PostgreSQL foreign key
// violation (class 23503).
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// rollback is the deferred transaction cleanup; a rollback after commit
// returns sql.ErrTxDone, which is expected and ignored.
func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Error("failed to rollback transaction", slog.String("error", err.Error()))
	}
}
