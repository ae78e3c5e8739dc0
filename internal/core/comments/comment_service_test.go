package comments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ember-social/ember/internal/core/posts"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, comment *Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockRepository) ListForPost(ctx context.Context, viewerID, postID uuid.UUID, now time.Time) ([]*ViewerComment, error) {
	args := m.Called(ctx, viewerID, postID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ViewerComment), args.Error(1)
}

func (m *MockRepository) ApplyVote(ctx context.Context, callerID, commentID uuid.UUID, action VoteAction) (*VoteResult, error) {
	args := m.Called(ctx, callerID, commentID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*VoteResult), args.Error(1)
}

// MockPostRepository is a mock implementation of posts.Repository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *posts.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetForViewer(ctx context.Context, viewerID, postID uuid.UUID) (*posts.ViewerPost, error) {
	args := m.Called(ctx, viewerID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.ViewerPost), args.Error(1)
}

func (m *MockPostRepository) SoftDelete(ctx context.Context, postID uuid.UUID) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockPostRepository) Like(ctx context.Context, userID, postID uuid.UUID) (int, bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockPostRepository) Unlike(ctx context.Context, userID, postID uuid.UUID) (int, bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockPostRepository) RecordView(ctx context.Context, viewerID, postID uuid.UUID, cutoff time.Time) (int, bool, error) {
	args := m.Called(ctx, viewerID, postID, cutoff)
	return args.Int(0), args.Bool(1), args.Error(2)
}

var testNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository, postRepo posts.Repository) *commentService {
	svc := NewService(repo, postRepo, nil).(*commentService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func livePost(authorID uuid.UUID) *posts.ViewerPost {
	return &posts.ViewerPost{
		Post: posts.Post{
			ID:         uuid.New(),
			AuthorID:   authorID,
			Visibility: posts.VisibilityPublic,
			CreatedAt:  testNow.Add(-time.Hour),
			ExpiresAt:  testNow.Add(23 * time.Hour),
		},
	}
}

func TestCreateCommentSetsSevenDayExpiry(t *testing.T) {
	repo := new(MockRepository)
	postRepo := new(MockPostRepository)
	svc := newTestService(repo, postRepo)
	author := uuid.New()
	post := livePost(uuid.New())

	postRepo.On("GetForViewer", mock.Anything, author, post.ID).Return(post, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Comment) bool {
		return c.PostID == post.ID &&
			c.AuthorID == author &&
			c.ExpiresAt.Equal(testNow.Add(7*24*time.Hour))
	})).Return(nil)

	view, err := svc.CreateComment(context.Background(), author, post.ID, "nice one")

	require.NoError(t, err)
	assert.Equal(t, "nice one", view.Body)
	assert.Equal(t, 0, view.NetVotes)
	repo.AssertExpectations(t)
}

func TestCreateCommentRejectsEmptyBody(t *testing.T) {
	svc := newTestService(new(MockRepository), new(MockPostRepository))

	_, err := svc.CreateComment(context.Background(), uuid.New(), uuid.New(), "")

	assert.True(t, IsValidationError(err))
}

func TestCreateCommentRejectsLongBody(t *testing.T) {
	svc := newTestService(new(MockRepository), new(MockPostRepository))

	_, err := svc.CreateComment(context.Background(), uuid.New(), uuid.New(), strings.Repeat("x", 501))

	assert.True(t, IsValidationError(err))
}

func TestCreateCommentOnExpiredPost(t *testing.T) {
	repo := new(MockRepository)
	postRepo := new(MockPostRepository)
	svc := newTestService(repo, postRepo)
	author := uuid.New()
	post := livePost(uuid.New())
	post.ExpiresAt = testNow.Add(-time.Minute)

	postRepo.On("GetForViewer", mock.Anything, author, post.ID).Return(post, nil)

	_, err := svc.CreateComment(context.Background(), author, post.ID, "too late")

	assert.True(t, IsValidationError(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCommentInvisiblePostIsNotFound(t *testing.T) {
	repo := new(MockRepository)
	postRepo := new(MockPostRepository)
	svc := newTestService(repo, postRepo)
	author := uuid.New()
	postID := uuid.New()

	postRepo.On("GetForViewer", mock.Anything, author, postID).Return(nil, posts.ErrNotFound)

	_, err := svc.CreateComment(context.Background(), author, postID, "hello?")

	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestVoteRejectsUnknownAction(t *testing.T) {
	svc := newTestService(new(MockRepository), new(MockPostRepository))

	_, err := svc.Vote(context.Background(), uuid.New(), uuid.New(), VoteAction("sideways"))

	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestVotePassesThroughResult(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockPostRepository))
	caller := uuid.New()
	commentID := uuid.New()
	up := DirectionUp

	repo.On("ApplyVote", mock.Anything, caller, commentID, VoteUp).Return(&VoteResult{
		Upvotes:         3,
		Downvotes:       1,
		NetVotes:        2,
		CallerDirection: &up,
	}, nil)

	res, err := svc.Vote(context.Background(), caller, commentID, VoteUp)

	require.NoError(t, err)
	assert.Equal(t, 3, res.Upvotes)
	assert.Equal(t, 1, res.Downvotes)
	require.NotNil(t, res.CallerDirection)
	assert.Equal(t, DirectionUp, *res.CallerDirection)
}

func TestListForPostExpiredPostIsNotFound(t *testing.T) {
	repo := new(MockRepository)
	postRepo := new(MockPostRepository)
	svc := newTestService(repo, postRepo)
	viewer := uuid.New()
	post := livePost(uuid.New())
	post.ExpiresAt = testNow.Add(-time.Minute)

	postRepo.On("GetForViewer", mock.Anything, viewer, post.ID).Return(post, nil)

	_, err := svc.ListForPost(context.Background(), viewer, post.ID)

	assert.ErrorIs(t, err, posts.ErrNotFound)
}
