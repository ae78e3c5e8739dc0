package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/core/users"
	"github.com/ember-social/ember/internal/identity"
)

// stubResolver implements identity.Resolver for testing
type stubResolver struct {
	identity *identity.Identity
	err      error
}

func (s *stubResolver) Resolve(ctx context.Context, bearer string) (*identity.Identity, error) {
	return s.identity, s.err
}

// stubUserService implements users.Service for testing
type stubUserService struct {
	user *users.User
	err  error
}

func (s *stubUserService) EnsureUser(ctx context.Context, subject, email string) (*users.User, error) {
	return s.user, s.err
}

func (s *stubUserService) GetProfile(ctx context.Context, viewerID, targetID uuid.UUID) (*users.Profile, error) {
	return nil, nil
}

func (s *stubUserService) UpdateProfile(ctx context.Context, callerID uuid.UUID, req users.UpdateProfileRequest) (*users.User, error) {
	return nil, nil
}

func protected(m *AuthMiddleware, captured **users.User) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = GetViewer(r)
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRequireAuth_Success(t *testing.T) {
	user := &users.User{ID: uuid.New(), Subject: "ext|123"}
	m := NewAuthMiddleware(
		&stubResolver{identity: &identity.Identity{Subject: "ext|123", Email: "a@example.com"}},
		&stubUserService{user: user},
	)

	var viewer *users.User
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	req.Header.Set("Authorization", "Bearer sometoken")

	w := httptest.NewRecorder()
	protected(m, &viewer).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if viewer == nil || viewer.ID != user.ID {
		t.Errorf("Expected viewer %v in context, got %v", user, viewer)
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	m := NewAuthMiddleware(&stubResolver{}, &stubUserService{})

	var viewer *users.User
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)

	w := httptest.NewRecorder()
	protected(m, &viewer).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	m := NewAuthMiddleware(&stubResolver{}, &stubUserService{})

	var viewer *users.User
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	w := httptest.NewRecorder()
	protected(m, &viewer).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	m := NewAuthMiddleware(
		&stubResolver{err: identity.ErrInvalidToken},
		&stubUserService{},
	)

	var viewer *users.User
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	req.Header.Set("Authorization", "Bearer expired")

	w := httptest.NewRecorder()
	protected(m, &viewer).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestRequireAuth_ProviderDownMapsTo503(t *testing.T) {
	m := NewAuthMiddleware(
		&stubResolver{err: fmt.Errorf("jwks fetch: %w", identity.ErrProviderUnavailable)},
		&stubUserService{},
	)

	var viewer *users.User
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	req.Header.Set("Authorization", "Bearer sometoken")

	w := httptest.NewRecorder()
	protected(m, &viewer).ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}
