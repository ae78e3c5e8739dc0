package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/core/users"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.Repository {
	return &postgresUserRepo{db: db}
}

// EnsureBySubject upserts the user row keyed on the external subject.
// The no-op DO UPDATE makes RETURNING fire on conflict too, so concurrent
// first requests for the same subject converge on one row without a retry
// loop.
func (r *postgresUserRepo) EnsureBySubject(ctx context.Context, subject, displayName string) (*users.User, error) {
	query := `
		INSERT INTO users (id, subject, display_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (subject) DO UPDATE SET subject = EXCLUDED.subject
		RETURNING id, subject, display_name, bio, profile_public, created_at`

	user := &users.User{}
	var bio sql.NullString
	err := r.db.QueryRowContext(ctx, query, uuid.New(), subject, displayName).
		Scan(&user.ID, &user.Subject, &user.DisplayName, &bio, &user.ProfilePublic, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}

	user.Bio = nullStringPtr(bio)
	return user, nil
}

// GetByID retrieves a user by id
func (r *postgresUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	query := `
		SELECT id, subject, display_name, bio, profile_public, created_at
		FROM users
		WHERE id = $1`

	user := &users.User{}
	var bio sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Subject, &user.DisplayName, &bio, &user.ProfilePublic, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, users.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	user.Bio = nullStringPtr(bio)
	return user, nil
}

// UpdateProfile applies the non-nil fields and returns the updated row.
// Returns ErrNotFound if the user does not exist.
func (r *postgresUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, req users.UpdateProfileRequest) (*users.User, error) {
	var setClauses []string
	var args []interface{}
	argNum := 1

	if req.DisplayName != nil {
		setClauses = append(setClauses, fmt.Sprintf("display_name = $%d", argNum))
		args = append(args, *req.DisplayName)
		argNum++
	}
	if req.Bio != nil {
		setClauses = append(setClauses, fmt.Sprintf("bio = $%d", argNum))
		args = append(args, *req.Bio)
		argNum++
	}

	// Nothing to change; return the current row so callers always get the
	// same shape back.
	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING id, subject, display_name, bio, profile_public, created_at`,
		strings.Join(setClauses, ", "), argNum)

	user := &users.User{}
	var bio sql.NullString
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&user.ID, &user.Subject, &user.DisplayName, &bio, &user.ProfilePublic, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, users.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	user.Bio = nullStringPtr(bio)
	return user, nil
}

// ProfileStats computes the public profile counters in a single query with
// scalar subqueries. The post count only includes live posts; expired or
// deleted posts are gone from the profile the moment they lapse.
func (r *postgresUserRepo) ProfileStats(ctx context.Context, id uuid.UUID) (*users.ProfileStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM posts WHERE author_id = $1 AND soft_deleted = FALSE AND expires_at > NOW()) AS post_count,
			(SELECT COUNT(*) FROM follows WHERE followee_id = $1) AS follower_count,
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1) AS following_count`

	stats := &users.ProfileStats{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&stats.Posts, &stats.Followers, &stats.Following)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile stats: %w", err)
	}

	return stats, nil
}

// IsFollowing reports whether the directed follow edge exists
func (r *postgresUserRepo) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, followerID, followeeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check follow edge: %w", err)
	}

	return exists, nil
}
