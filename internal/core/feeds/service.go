package feeds

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/blobstore"
	"github.com/ember-social/ember/internal/core/posts"
	"github.com/ember-social/ember/internal/core/users"
)

type feedService struct {
	repo     Repository
	userRepo users.Repository
	blobs    blobstore.Store
	codec    *CursorCodec
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new feed service instance
func NewService(repo Repository, userRepo users.Repository, blobs blobstore.Store, codec *CursorCodec, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &feedService{
		repo:     repo,
		userRepo: userRepo,
		blobs:    blobs,
		codec:    codec,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *feedService) HomeFeed(ctx context.Context, viewerID uuid.UUID, cursor *string, limit int) (*FeedPage, error) {
	limit = clampLimit(limit)

	cur, err := s.codec.Decode(cursor)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rows, err := s.repo.HomeFeed(ctx, viewerID, cur, now, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to query home feed: %w", err)
	}

	return s.buildPage(ctx, rows, limit, now)
}

func (s *feedService) UserFeed(ctx context.Context, viewerID, targetID uuid.UUID, cursor *string, limit int) (*UserFeedPage, error) {
	limit = clampLimit(limit)

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	cur, err := s.codec.Decode(cursor)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rows, err := s.repo.UserFeed(ctx, viewerID, targetID, cur, now, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to query user feed: %w", err)
	}

	page, err := s.buildPage(ctx, rows, limit, now)
	if err != nil {
		return nil, err
	}

	return &UserFeedPage{
		User:   &FeedUser{ID: target.ID.String(), DisplayName: target.DisplayName},
		Items:  page.Items,
		Cursor: page.Cursor,
	}, nil
}

// buildPage turns limit+1 rows into a page: trim the sentinel row, project
// each post for the viewer, and sign the next cursor off the last item.
func (s *feedService) buildPage(ctx context.Context, rows []*posts.ViewerPost, limit int, now time.Time) (*FeedPage, error) {
	var nextCursor *string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		encoded := s.codec.Encode(Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		nextCursor = &encoded
	}

	items := make([]*posts.PostView, 0, len(rows))
	for _, row := range rows {
		var mediaURL *string
		if row.MediaKey != nil {
			url, err := s.blobs.URLFor(ctx, *row.MediaKey)
			if err != nil {
				return nil, err
			}
			mediaURL = &url
		}
		items = append(items, row.View(mediaURL, now))
	}

	return &FeedPage{Items: items, Cursor: nextCursor}, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
