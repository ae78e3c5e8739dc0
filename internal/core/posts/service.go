package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"

	"github.com/ember-social/ember/internal/blobstore"
	"github.com/ember-social/ember/internal/core/lifecycle"
)

const (
	// maxBodyGraphemes is the maximum post body length, counted in
	// grapheme clusters so multi-codepoint emoji count as one.
	maxBodyGraphemes = 500

	// MaxMediaBytes is the upload size limit (100 MiB).
	MaxMediaBytes = 100 << 20
)

type postService struct {
	repo   Repository
	blobs  blobstore.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new post service instance
func NewService(repo Repository, blobs blobstore.Store, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:   repo,
		blobs:  blobs,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*PostView, error) {
	if uniseg.GraphemeClusterCount(req.Body) > maxBodyGraphemes {
		return nil, NewValidationError("body", fmt.Sprintf("must be at most %d characters", maxBodyGraphemes))
	}
	if !req.Visibility.Valid() {
		return nil, NewValidationError("visibility", "must be 'public' or 'friends'")
	}

	var mediaKey *string
	if req.Media != nil {
		if !strings.HasPrefix(req.Media.ContentType, "video/") {
			return nil, ErrUnsupportedMedia
		}
		if req.Media.Size <= 0 || req.Media.Size > MaxMediaBytes {
			return nil, ErrPayloadTooLarge
		}

		// Blob PUT goes first so no row ever references a missing blob.
		// If the insert below fails, the orphan blob is reclaimed by a
		// separate sweep.
		key := fmt.Sprintf("media/%s", uuid.New())
		if err := s.blobs.Put(ctx, key, req.Media.Data, req.Media.ContentType, req.Media.Size); err != nil {
			s.logger.Error("media upload failed", "key", key, "error", err)
			return nil, err
		}
		mediaKey = &key
	}

	createdAt := s.now()
	post := &Post{
		ID:         uuid.New(),
		AuthorID:   req.AuthorID,
		Body:       req.Body,
		MediaKey:   mediaKey,
		Visibility: req.Visibility,
		CreatedAt:  createdAt,
		ExpiresAt:  lifecycle.InitialExpiry(lifecycle.KindPost, createdAt),
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created",
		"post", post.ID,
		"author", post.AuthorID,
		"visibility", post.Visibility,
		"has_media", mediaKey != nil)

	return s.GetPost(ctx, req.AuthorID, post.ID)
}

func (s *postService) GetPost(ctx context.Context, viewerID, postID uuid.UUID) (*PostView, error) {
	vp, err := s.getLive(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, vp)
}

func (s *postService) DeletePost(ctx context.Context, callerID, postID uuid.UUID) error {
	vp, err := s.repo.GetForViewer(ctx, callerID, postID)
	if err != nil {
		return err
	}
	if vp.AuthorID != callerID {
		return ErrForbidden
	}

	if err := s.repo.SoftDelete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted", "post", postID, "author", callerID)
	return nil
}

func (s *postService) Like(ctx context.Context, callerID, postID uuid.UUID) (*LikeResult, error) {
	if _, err := s.getLive(ctx, callerID, postID); err != nil {
		return nil, err
	}

	count, liked, err := s.repo.Like(ctx, callerID, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to like post: %w", err)
	}

	return &LikeResult{Action: "liked", LikeCount: count, Liked: liked}, nil
}

func (s *postService) Unlike(ctx context.Context, callerID, postID uuid.UUID) (*LikeResult, error) {
	if _, err := s.getLive(ctx, callerID, postID); err != nil {
		return nil, err
	}

	count, liked, err := s.repo.Unlike(ctx, callerID, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to unlike post: %w", err)
	}

	return &LikeResult{Action: "unliked", LikeCount: count, Liked: liked}, nil
}

func (s *postService) RecordView(ctx context.Context, callerID, postID uuid.UUID) (*ViewResult, error) {
	if _, err := s.getLive(ctx, callerID, postID); err != nil {
		if errors.Is(err, ErrNotFound) {
			// Viewing an invisible post succeeds without mutation so
			// the response does not leak the post's existence.
			return &ViewResult{}, nil
		}
		return nil, err
	}

	cutoff := s.now().Add(-lifecycle.ViewDedupWindow)
	count, counted, err := s.repo.RecordView(ctx, callerID, postID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to record view: %w", err)
	}

	return &ViewResult{ViewCount: count, Counted: counted}, nil
}

// getLive fetches the viewer-scoped post and folds expiry into not-found:
// an expired post that the reaper has not yet swept is already gone from
// the caller's point of view.
func (s *postService) getLive(ctx context.Context, viewerID, postID uuid.UUID) (*ViewerPost, error) {
	vp, err := s.repo.GetForViewer(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}
	if !s.now().Before(vp.ExpiresAt) {
		return nil, ErrNotFound
	}
	return vp, nil
}

// buildView assembles the per-viewer projection, resolving the media key
// to a retrieval URL.
func (s *postService) buildView(ctx context.Context, vp *ViewerPost) (*PostView, error) {
	var mediaURL *string
	if vp.MediaKey != nil {
		url, err := s.blobs.URLFor(ctx, *vp.MediaKey)
		if err != nil {
			return nil, err
		}
		mediaURL = &url
	}
	return vp.View(mediaURL, s.now()), nil
}

// View builds the client projection from a hydrated row.
func (vp *ViewerPost) View(mediaURL *string, now time.Time) *PostView {
	remaining := vp.ExpiresAt.Sub(now).Hours()
	if remaining < 0 {
		remaining = 0
	}
	return &PostView{
		ID:                vp.ID,
		AuthorID:          vp.AuthorID,
		AuthorDisplayName: vp.AuthorDisplayName,
		Body:              vp.Body,
		MediaURL:          mediaURL,
		Visibility:        vp.Visibility,
		CreatedAt:         vp.CreatedAt,
		ExpiresAt:         vp.ExpiresAt,
		HoursRemaining:    remaining,
		ViewCount:         vp.ViewCount,
		LikeCount:         vp.LikeCount,
		CommentCount:      vp.CommentCount,
		LikedByViewer:     vp.LikedByViewer,
	}
}
