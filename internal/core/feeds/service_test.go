package feeds

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ember-social/ember/internal/core/posts"
	"github.com/ember-social/ember/internal/core/users"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) HomeFeed(ctx context.Context, viewerID uuid.UUID, cursor *Cursor, now time.Time, limit int) ([]*posts.ViewerPost, error) {
	args := m.Called(ctx, viewerID, cursor, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*posts.ViewerPost), args.Error(1)
}

func (m *MockRepository) UserFeed(ctx context.Context, viewerID, targetID uuid.UUID, cursor *Cursor, now time.Time, limit int) ([]*posts.ViewerPost, error) {
	args := m.Called(ctx, viewerID, targetID, cursor, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*posts.ViewerPost), args.Error(1)
}

// MockUserRepository is a mock implementation of users.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureBySubject(ctx context.Context, subject, displayName string) (*users.User, error) {
	args := m.Called(ctx, subject, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, req users.UpdateProfileRequest) (*users.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserRepository) ProfileStats(ctx context.Context, id uuid.UUID) (*users.ProfileStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.ProfileStats), args.Error(1)
}

func (m *MockUserRepository) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

// MockBlobStore is a mock implementation of blobstore.Store
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, key string, r io.Reader, contentType string, size int64) error {
	args := m.Called(ctx, key, r, contentType, size)
	return args.Error(0)
}

func (m *MockBlobStore) URLFor(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

var testNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository, userRepo users.Repository, blobs *MockBlobStore) *feedService {
	svc := NewService(repo, userRepo, blobs, NewCursorCodec("test-secret"), nil).(*feedService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func feedRow(createdAt time.Time) *posts.ViewerPost {
	return &posts.ViewerPost{
		Post: posts.Post{
			ID:         uuid.New(),
			AuthorID:   uuid.New(),
			Body:       "post",
			Visibility: posts.VisibilityPublic,
			CreatedAt:  createdAt,
			ExpiresAt:  createdAt.Add(24 * time.Hour),
		},
		AuthorDisplayName: "Alice",
	}
}

func TestHomeFeedLastPageHasNoCursor(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockUserRepository), new(MockBlobStore))
	viewer := uuid.New()
	rows := []*posts.ViewerPost{feedRow(testNow.Add(-time.Hour)), feedRow(testNow.Add(-2 * time.Hour))}

	// Service asks for limit+1 to detect the next page.
	repo.On("HomeFeed", mock.Anything, viewer, (*Cursor)(nil), testNow, 11).Return(rows, nil)

	page, err := svc.HomeFeed(context.Background(), viewer, nil, 10)

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Nil(t, page.Cursor)
}

func TestHomeFeedFullPageYieldsCursor(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockUserRepository), new(MockBlobStore))
	viewer := uuid.New()

	rows := make([]*posts.ViewerPost, 3)
	for i := range rows {
		rows[i] = feedRow(testNow.Add(-time.Duration(i+1) * time.Hour))
	}
	repo.On("HomeFeed", mock.Anything, viewer, (*Cursor)(nil), testNow, 3).Return(rows, nil)

	page, err := svc.HomeFeed(context.Background(), viewer, nil, 2)

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	require.NotNil(t, page.Cursor)

	// The cursor decodes back to the last returned item.
	cur, err := NewCursorCodec("test-secret").Decode(page.Cursor)
	require.NoError(t, err)
	assert.Equal(t, rows[1].ID, cur.ID)
}

func TestHomeFeedClampsLimit(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockUserRepository), new(MockBlobStore))
	viewer := uuid.New()

	repo.On("HomeFeed", mock.Anything, viewer, (*Cursor)(nil), testNow, MaxLimit+1).
		Return([]*posts.ViewerPost{}, nil)

	_, err := svc.HomeFeed(context.Background(), viewer, nil, 500)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestHomeFeedRejectsBadCursor(t *testing.T) {
	svc := newTestService(new(MockRepository), new(MockUserRepository), new(MockBlobStore))
	bad := "bogus"

	_, err := svc.HomeFeed(context.Background(), uuid.New(), &bad, 10)

	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestHomeFeedResolvesMediaURLs(t *testing.T) {
	repo := new(MockRepository)
	blobs := new(MockBlobStore)
	svc := newTestService(repo, new(MockUserRepository), blobs)
	viewer := uuid.New()

	row := feedRow(testNow.Add(-time.Hour))
	key := "media/xyz"
	row.MediaKey = &key
	repo.On("HomeFeed", mock.Anything, viewer, (*Cursor)(nil), testNow, mock.Anything).
		Return([]*posts.ViewerPost{row}, nil)
	blobs.On("URLFor", mock.Anything, key).Return("https://cdn.example/media/xyz", nil)

	page, err := svc.HomeFeed(context.Background(), viewer, nil, 10)

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Items[0].MediaURL)
	assert.Equal(t, "https://cdn.example/media/xyz", *page.Items[0].MediaURL)
	assert.InDelta(t, 23.0, page.Items[0].HoursRemaining, 0.01)
}

func TestUserFeedIncludesUserHeader(t *testing.T) {
	repo := new(MockRepository)
	userRepo := new(MockUserRepository)
	svc := newTestService(repo, userRepo, new(MockBlobStore))
	viewer, target := uuid.New(), uuid.New()

	userRepo.On("GetByID", mock.Anything, target).Return(&users.User{ID: target, DisplayName: "Bob"}, nil)
	repo.On("UserFeed", mock.Anything, viewer, target, (*Cursor)(nil), testNow, mock.Anything).
		Return([]*posts.ViewerPost{}, nil)

	page, err := svc.UserFeed(context.Background(), viewer, target, nil, 10)

	require.NoError(t, err)
	assert.Equal(t, "Bob", page.User.DisplayName)
	assert.Empty(t, page.Items)
}

func TestUserFeedUnknownUser(t *testing.T) {
	repo := new(MockRepository)
	userRepo := new(MockUserRepository)
	svc := newTestService(repo, userRepo, new(MockBlobStore))
	target := uuid.New()

	userRepo.On("GetByID", mock.Anything, target).Return(nil, users.ErrNotFound)

	_, err := svc.UserFeed(context.Background(), uuid.New(), target, nil, 10)

	assert.ErrorIs(t, err, users.ErrNotFound)
}
