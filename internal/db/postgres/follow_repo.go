package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/core/follows"
)

type postgresFollowRepo struct {
	db *sql.DB
}

// NewFollowRepository creates a new PostgreSQL follow repository
func NewFollowRepository(db *sql.DB) follows.Repository {
	return &postgresFollowRepo{db: db}
}

// Follow inserts the directed edge. Inserting an existing edge is a no-op;
// a foreign key violation means the followee does not exist.
func (r *postgresFollowRepo) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	query := `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, followerID, followeeID); err != nil {
		if isForeignKeyViolation(err) {
			return follows.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert follow: %w", err)
	}

	return nil
}

// Unfollow deletes the edge. Deleting a missing edge is a no-op.
func (r *postgresFollowRepo) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`

	if _, err := r.db.ExecContext(ctx, query, followerID, followeeID); err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	return nil
}

// IsFollowing reports whether the directed edge exists
func (r *postgresFollowRepo) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, followerID, followeeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check follow edge: %w", err)
	}

	return exists, nil
}

// IsFriend reports whether both directed edges exist in one round trip
func (r *postgresFollowRepo) IsFriend(ctx context.Context, a, b uuid.UUID) (bool, error) {
	query := `
		SELECT
			EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)
			AND EXISTS (SELECT 1 FROM follows WHERE follower_id = $2 AND followee_id = $1)`

	var mutual bool
	if err := r.db.QueryRowContext(ctx, query, a, b).Scan(&mutual); err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}

	return mutual, nil
}
