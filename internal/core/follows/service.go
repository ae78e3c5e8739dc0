package follows

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

type followService struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new follow service instance
func NewService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &followService{repo: repo, logger: logger}
}

func (s *followService) Follow(ctx context.Context, followerID, followeeID uuid.UUID) (*FollowResult, error) {
	if followerID == followeeID {
		return nil, ErrSelfFollow
	}

	if err := s.repo.Follow(ctx, followerID, followeeID); err != nil {
		return nil, fmt.Errorf("failed to follow: %w", err)
	}

	return &FollowResult{Action: "followed", Following: true}, nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) (*FollowResult, error) {
	if followerID == followeeID {
		return nil, ErrSelfFollow
	}

	if err := s.repo.Unfollow(ctx, followerID, followeeID); err != nil {
		return nil, fmt.Errorf("failed to unfollow: %w", err)
	}

	return &FollowResult{Action: "unfollowed", Following: false}, nil
}
