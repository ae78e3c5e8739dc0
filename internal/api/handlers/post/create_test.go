package post

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"

	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/posts"
	"github.com/ember-social/ember/internal/core/users"
)

// mockPostService implements posts.Service for testing
type mockPostService struct {
	createFunc func(ctx context.Context, req posts.CreatePostRequest) (*posts.PostView, error)
	getFunc    func(ctx context.Context, viewerID, postID uuid.UUID) (*posts.PostView, error)
	deleteFunc func(ctx context.Context, callerID, postID uuid.UUID) error
}

func (m *mockPostService) CreatePost(ctx context.Context, req posts.CreatePostRequest) (*posts.PostView, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &posts.PostView{ID: uuid.New(), Body: req.Body}, nil
}

func (m *mockPostService) GetPost(ctx context.Context, viewerID, postID uuid.UUID) (*posts.PostView, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, viewerID, postID)
	}
	return &posts.PostView{ID: postID}, nil
}

func (m *mockPostService) DeletePost(ctx context.Context, callerID, postID uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, callerID, postID)
	}
	return nil
}

func (m *mockPostService) Like(ctx context.Context, callerID, postID uuid.UUID) (*posts.LikeResult, error) {
	return &posts.LikeResult{Action: "liked", LikeCount: 1, Liked: true}, nil
}

func (m *mockPostService) Unlike(ctx context.Context, callerID, postID uuid.UUID) (*posts.LikeResult, error) {
	return &posts.LikeResult{Action: "unliked"}, nil
}

func (m *mockPostService) RecordView(ctx context.Context, callerID, postID uuid.UUID) (*posts.ViewResult, error) {
	return &posts.ViewResult{ViewCount: 1, Counted: true}, nil
}

// multipartBody builds a multipart form with the given fields and an
// optional media part.
func multipartBody(t *testing.T, fields map[string]string, mediaName, mediaType string, media []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("Failed to write field %s: %v", k, err)
		}
	}
	if media != nil {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="media"; filename="`+mediaName+`"`)
		hdr.Set("Content-Type", mediaType)
		part, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("Failed to create media part: %v", err)
		}
		if _, err := part.Write(media); err != nil {
			t.Fatalf("Failed to write media: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestCreateHandler_TextOnly(t *testing.T) {
	viewer := &users.User{ID: uuid.New()}

	var gotReq posts.CreatePostRequest
	service := &mockPostService{
		createFunc: func(ctx context.Context, req posts.CreatePostRequest) (*posts.PostView, error) {
			gotReq = req
			return &posts.PostView{ID: uuid.New(), Body: req.Body, Visibility: req.Visibility}, nil
		},
	}
	handler := NewCreateHandler(service)

	body, contentType := multipartBody(t, map[string]string{
		"body":       "hello",
		"visibility": "public",
	}, "", "", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.SetTestViewer(req.Context(), viewer))

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}
	if gotReq.AuthorID != viewer.ID {
		t.Errorf("Expected author %s, got %s", viewer.ID, gotReq.AuthorID)
	}
	if gotReq.Body != "hello" {
		t.Errorf("Expected body hello, got %q", gotReq.Body)
	}
	if gotReq.Media != nil {
		t.Error("Expected no media on text-only post")
	}
}

func TestCreateHandler_WithMedia(t *testing.T) {
	viewer := &users.User{ID: uuid.New()}
	payload := []byte("fake video bytes")

	var gotReq posts.CreatePostRequest
	service := &mockPostService{
		createFunc: func(ctx context.Context, req posts.CreatePostRequest) (*posts.PostView, error) {
			gotReq = req
			return &posts.PostView{ID: uuid.New()}, nil
		},
	}
	handler := NewCreateHandler(service)

	body, contentType := multipartBody(t, map[string]string{
		"body":       "look",
		"visibility": "public",
	}, "clip.mp4", "video/mp4", payload)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.SetTestViewer(req.Context(), viewer))

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}
	if gotReq.Media == nil {
		t.Fatal("Expected media upload")
	}
	if gotReq.Media.ContentType != "video/mp4" {
		t.Errorf("Expected content type video/mp4, got %s", gotReq.Media.ContentType)
	}
	if gotReq.Media.Size != int64(len(payload)) {
		t.Errorf("Expected size %d, got %d", len(payload), gotReq.Media.Size)
	}
}

func TestCreateHandler_RequiresAuth(t *testing.T) {
	handler := NewCreateHandler(&mockPostService{})

	body, contentType := multipartBody(t, map[string]string{"body": "hi"}, "", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestCreateHandler_ValidationErrorMapsTo400(t *testing.T) {
	viewer := &users.User{ID: uuid.New()}
	service := &mockPostService{
		createFunc: func(ctx context.Context, req posts.CreatePostRequest) (*posts.PostView, error) {
			return nil, posts.NewValidationError("visibility", "must be 'public' or 'friends'")
		},
	}
	handler := NewCreateHandler(service)

	body, contentType := multipartBody(t, map[string]string{
		"body":       "hello",
		"visibility": "everyone",
	}, "", "", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.SetTestViewer(req.Context(), viewer))

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var resp struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error.Kind != "InvalidInput" {
		t.Errorf("Expected kind InvalidInput, got %s", resp.Error.Kind)
	}
}

func TestCreateHandler_UnsupportedMediaMapsTo415(t *testing.T) {
	viewer := &users.User{ID: uuid.New()}
	service := &mockPostService{
		createFunc: func(ctx context.Context, req posts.CreatePostRequest) (*posts.PostView, error) {
			return nil, posts.ErrUnsupportedMedia
		},
	}
	handler := NewCreateHandler(service)

	body, contentType := multipartBody(t, map[string]string{
		"body":       "pic",
		"visibility": "public",
	}, "photo.jpg", "image/jpeg", []byte("jpeg"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.SetTestViewer(req.Context(), viewer))

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("Expected status 415, got %d", w.Code)
	}
}
