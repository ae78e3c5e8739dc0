package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/users"
)

// mockUserService implements users.Service for testing
type mockUserService struct {
	updateFunc func(ctx context.Context, callerID uuid.UUID, req users.UpdateProfileRequest) (*users.User, error)
	profile    *users.Profile
	profileErr error
}

func (m *mockUserService) EnsureUser(ctx context.Context, subject, email string) (*users.User, error) {
	return nil, nil
}

func (m *mockUserService) GetProfile(ctx context.Context, viewerID, targetID uuid.UUID) (*users.Profile, error) {
	return m.profile, m.profileErr
}

func (m *mockUserService) UpdateProfile(ctx context.Context, callerID uuid.UUID, req users.UpdateProfileRequest) (*users.User, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, callerID, req)
	}
	return &users.User{ID: callerID}, nil
}

func TestUpdateProfileHandler_Success(t *testing.T) {
	viewer := &users.User{ID: uuid.New()}

	var gotReq users.UpdateProfileRequest
	service := &mockUserService{
		updateFunc: func(ctx context.Context, callerID uuid.UUID, req users.UpdateProfileRequest) (*users.User, error) {
			if callerID != viewer.ID {
				t.Errorf("Expected caller %s, got %s", viewer.ID, callerID)
			}
			gotReq = req
			name := *req.DisplayName
			return &users.User{ID: callerID, DisplayName: name}, nil
		},
	}
	handler := NewUpdateProfileHandler(service)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/me",
		strings.NewReader(`{"displayName":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.SetTestViewer(req.Context(), viewer))

	w := httptest.NewRecorder()
	handler.HandleUpdateProfile(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if gotReq.DisplayName == nil || *gotReq.DisplayName != "Ada" {
		t.Errorf("Expected displayName Ada, got %v", gotReq.DisplayName)
	}
	if gotReq.Bio != nil {
		t.Error("Expected bio to stay nil when absent from the body")
	}

	var updated users.User
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if updated.DisplayName != "Ada" {
		t.Errorf("Expected display name Ada, got %s", updated.DisplayName)
	}
}

func TestUpdateProfileHandler_RequiresAuth(t *testing.T) {
	handler := NewUpdateProfileHandler(&mockUserService{})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/me",
		strings.NewReader(`{"displayName":"Ada"}`))

	w := httptest.NewRecorder()
	handler.HandleUpdateProfile(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestUpdateProfileHandler_InvalidBody(t *testing.T) {
	handler := NewUpdateProfileHandler(&mockUserService{})
	viewer := &users.User{ID: uuid.New()}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/me",
		strings.NewReader(`{"displayName":`))
	req = req.WithContext(middleware.SetTestViewer(req.Context(), viewer))

	w := httptest.NewRecorder()
	handler.HandleUpdateProfile(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestUpdateProfileHandler_ValidationErrorMapsTo400(t *testing.T) {
	viewer := &users.User{ID: uuid.New()}
	service := &mockUserService{
		updateFunc: func(ctx context.Context, callerID uuid.UUID, req users.UpdateProfileRequest) (*users.User, error) {
			return nil, users.NewValidationError("displayName", "must not be empty")
		},
	}
	handler := NewUpdateProfileHandler(service)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/me",
		strings.NewReader(`{"displayName":"  "}`))
	req = req.WithContext(middleware.SetTestViewer(req.Context(), viewer))

	w := httptest.NewRecorder()
	handler.HandleUpdateProfile(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}
