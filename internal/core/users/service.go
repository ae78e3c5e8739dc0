package users

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
)

const (
	maxDisplayNameGraphemes = 64
	maxBioGraphemes         = 280
)

type userService struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new user service instance
func NewService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{repo: repo, logger: logger}
}

func (s *userService) EnsureUser(ctx context.Context, subject, email string) (*User, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("subject is required")
	}

	return s.repo.EnsureBySubject(ctx, subject, defaultDisplayName(subject, email))
}

func (s *userService) GetProfile(ctx context.Context, viewerID, targetID uuid.UUID) (*Profile, error) {
	user, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.ProfileStats(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile stats: %w", err)
	}

	followed := false
	if viewerID != targetID {
		followed, err = s.repo.IsFollowing(ctx, viewerID, targetID)
		if err != nil {
			return nil, fmt.Errorf("failed to check follow state: %w", err)
		}
	}

	return &Profile{
		ID:               user.ID,
		DisplayName:      user.DisplayName,
		Bio:              user.Bio,
		PostCount:        stats.Posts,
		FollowerCount:    stats.Followers,
		FollowingCount:   stats.Following,
		FollowedByViewer: followed,
		Editable:         viewerID == targetID,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, callerID uuid.UUID, req UpdateProfileRequest) (*User, error) {
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, NewValidationError("displayName", "must not be empty")
		}
		if uniseg.GraphemeClusterCount(name) > maxDisplayNameGraphemes {
			return nil, NewValidationError("displayName", fmt.Sprintf("must be at most %d characters", maxDisplayNameGraphemes))
		}
		req.DisplayName = &name
	}
	if req.Bio != nil && uniseg.GraphemeClusterCount(*req.Bio) > maxBioGraphemes {
		return nil, NewValidationError("bio", fmt.Sprintf("must be at most %d characters", maxBioGraphemes))
	}

	user, err := s.repo.UpdateProfile(ctx, callerID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user", callerID)
	return user, nil
}

// defaultDisplayName derives a usable name for a first-seen subject. The
// email local part reads better than an opaque subject when available.
func defaultDisplayName(subject, email string) string {
	if email != "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			return email[:at]
		}
	}
	if len(subject) > 12 {
		return subject[:12]
	}
	return subject
}
