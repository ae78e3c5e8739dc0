package comments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"

	"github.com/ember-social/ember/internal/core/lifecycle"
	"github.com/ember-social/ember/internal/core/posts"
)

// maxBodyGraphemes is the maximum comment body length in grapheme clusters.
const maxBodyGraphemes = 500

type commentService struct {
	repo     Repository
	postRepo posts.Repository
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new comment service instance. The post repository is
// needed to apply the visibility predicate before letting anyone comment.
func NewService(repo Repository, postRepo posts.Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		repo:     repo,
		postRepo: postRepo,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *commentService) CreateComment(ctx context.Context, authorID, postID uuid.UUID, body string) (*CommentView, error) {
	graphemes := uniseg.GraphemeClusterCount(body)
	if graphemes == 0 {
		return nil, NewValidationError("body", "must not be empty")
	}
	if graphemes > maxBodyGraphemes {
		return nil, NewValidationError("body", fmt.Sprintf("must be at most %d characters", maxBodyGraphemes))
	}

	post, err := s.postRepo.GetForViewer(ctx, authorID, postID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !now.Before(post.ExpiresAt) {
		return nil, NewValidationError("post", "cannot comment on an expired post")
	}

	comment := &Comment{
		ID:        uuid.New(),
		PostID:    postID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: now,
		ExpiresAt: lifecycle.InitialExpiry(lifecycle.KindComment, now),
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info("comment created", "comment", comment.ID, "post", postID, "author", authorID)

	vc := &ViewerComment{Comment: *comment}
	return vc.View(), nil
}

func (s *commentService) ListForPost(ctx context.Context, viewerID, postID uuid.UUID) ([]*CommentView, error) {
	post, err := s.postRepo.GetForViewer(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !now.Before(post.ExpiresAt) {
		return nil, posts.ErrNotFound
	}

	rows, err := s.repo.ListForPost(ctx, viewerID, postID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	views := make([]*CommentView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.View())
	}
	return views, nil
}

func (s *commentService) Vote(ctx context.Context, callerID, commentID uuid.UUID, action VoteAction) (*VoteResult, error) {
	if !action.Valid() {
		return nil, ErrInvalidAction
	}

	result, err := s.repo.ApplyVote(ctx, callerID, commentID, action)
	if err != nil {
		return nil, err
	}

	if result.Terminated {
		s.logger.Info("comment terminated by toxicity threshold",
			"comment", commentID,
			"downvotes", result.Downvotes)
	}

	return result, nil
}
