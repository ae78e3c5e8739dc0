package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/core/feeds"
	"github.com/ember-social/ember/internal/core/posts"
)

// postgresFeedRepo serves the chronological feed queries.
//
// DATABASE INDEXES REQUIRED (created in the posts migration):
//
//  1. idx_posts_created ON posts (created_at DESC, id DESC) WHERE soft_deleted = FALSE
//     Covers the keyset ORDER BY and cursor comparison for the home feed.
//  2. idx_posts_author_created ON posts (author_id, created_at DESC, id DESC) WHERE soft_deleted = FALSE
//     Covers the user feed.
//  3. idx_follows pair lookups use the (follower_id, followee_id) primary key.
//
// Both queries use the limit+1 pattern: the service asks for one extra row
// to detect the next page without a second query, and trims it off.
type postgresFeedRepo struct {
	db *sql.DB
}

// NewFeedRepository creates a new PostgreSQL feed repository
func NewFeedRepository(db *sql.DB) feeds.Repository {
	return &postgresFeedRepo{db: db}
}

// feedColumns is the shared SELECT list; it matches scanViewerPost.
const feedColumns = `
		p.id, p.author_id, p.body, p.media_key, p.visibility,
		p.created_at, p.expires_at, p.soft_deleted,
		p.view_count, p.like_count, p.comment_count,
		u.display_name,
		EXISTS (
			SELECT 1 FROM post_likes pl
			WHERE pl.post_id = p.id AND pl.user_id = $1
		) AS liked_by_viewer`

// HomeFeed returns the live posts visible to the viewer, newest first.
// Expired-but-unreaped rows are filtered out here; a feed never shows a
// post past its expiry even before the nightly sweep runs.
func (r *postgresFeedRepo) HomeFeed(ctx context.Context, viewerID uuid.UUID, cursor *feeds.Cursor, now time.Time, limit int) ([]*posts.ViewerPost, error) {
	args := []interface{}{viewerID, now}

	cursorFilter := ""
	if cursor != nil {
		cursorFilter = `AND (p.created_at, p.id) < ($3, $4)`
		args = append(args, cursor.CreatedAt, cursor.ID)
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE %s
			AND p.expires_at > $2
			%s
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $%d`,
		feedColumns, visibilityFilter(1), cursorFilter, len(args))

	return r.queryFeed(ctx, query, args)
}

// UserFeed returns the target user's live posts visible to the viewer,
// newest first.
func (r *postgresFeedRepo) UserFeed(ctx context.Context, viewerID, targetID uuid.UUID, cursor *feeds.Cursor, now time.Time, limit int) ([]*posts.ViewerPost, error) {
	args := []interface{}{viewerID, now, targetID}

	cursorFilter := ""
	if cursor != nil {
		cursorFilter = `AND (p.created_at, p.id) < ($4, $5)`
		args = append(args, cursor.CreatedAt, cursor.ID)
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE %s
			AND p.expires_at > $2
			AND p.author_id = $3
			%s
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $%d`,
		feedColumns, visibilityFilter(1), cursorFilter, len(args))

	return r.queryFeed(ctx, query, args)
}

func (r *postgresFeedRepo) queryFeed(ctx context.Context, query string, args []interface{}) ([]*posts.ViewerPost, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*posts.ViewerPost
	for rows.Next() {
		vp, err := scanViewerPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed post: %w", err)
		}
		result = append(result, vp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed: %w", err)
	}

	return result, nil
}

// scanViewerPost scans one feedColumns row.
func scanViewerPost(rows *sql.Rows) (*posts.ViewerPost, error) {
	vp := &posts.ViewerPost{}
	var mediaKey sql.NullString
	err := rows.Scan(
		&vp.ID, &vp.AuthorID, &vp.Body, &mediaKey, &vp.Visibility,
		&vp.CreatedAt, &vp.ExpiresAt, &vp.SoftDeleted,
		&vp.ViewCount, &vp.LikeCount, &vp.CommentCount,
		&vp.AuthorDisplayName, &vp.LikedByViewer)
	if err != nil {
		return nil, err
	}
	vp.MediaKey = nullStringPtr(mediaKey)
	return vp, nil
}
