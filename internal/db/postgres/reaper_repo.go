package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ember-social/ember/internal/core/reaper"
)

type postgresReaperRepo struct {
	db *sql.DB
}

// NewReaperRepository creates a new PostgreSQL reaper repository
func NewReaperRepository(db *sql.DB) reaper.Repository {
	return &postgresReaperRepo{db: db}
}

// ReapPosts soft-deletes up to limit expired posts. SKIP LOCKED lets the
// sweep coexist with request-path writes holding row locks; those rows are
// picked up on the next batch.
func (r *postgresReaperRepo) ReapPosts(ctx context.Context, now time.Time, limit int) (int64, error) {
	return r.reap(ctx, "posts", now, limit)
}

// ReapComments soft-deletes up to limit expired comments.
func (r *postgresReaperRepo) ReapComments(ctx context.Context, now time.Time, limit int) (int64, error) {
	return r.reap(ctx, "comments", now, limit)
}

func (r *postgresReaperRepo) reap(ctx context.Context, table string, now time.Time, limit int) (int64, error) {
	// table is one of two compile-time constants, never caller input.
	// The inner WHERE clause is lifecycle.ShouldReap expressed in SQL so
	// the sweep runs set-wise; keep the two predicates in step.
	query := fmt.Sprintf(`
		UPDATE %[1]s
		SET soft_deleted = TRUE
		WHERE id IN (
			SELECT id FROM %[1]s
			WHERE soft_deleted = FALSE AND expires_at <= $1
			ORDER BY expires_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)`, table)

	result, err := r.db.ExecContext(ctx, query, now, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to reap %s: %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check reap result: %w", err)
	}

	return affected, nil
}
