package post

import (
	"errors"
	"net/http"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/posts"
)

// multipartOverhead is headroom on top of the media limit for the text
// fields and multipart framing.
const multipartOverhead = 1 << 20

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{service: service}
}

// HandleCreate handles POST /api/v1/posts
// Accepts multipart/form-data: body, visibility, optional media file.
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	if viewer == nil {
		handlers.WriteError(w, http.StatusUnauthorized, handlers.KindUnauthenticated,
			"Authentication required")
		return
	}

	// Cap the whole request body; the service enforces the per-file limit
	// precisely, this guards the transport.
	r.Body = http.MaxBytesReader(w, r.Body, posts.MaxMediaBytes+multipartOverhead)

	if err := r.ParseMultipartForm(4 << 20); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			handlers.WriteError(w, http.StatusRequestEntityTooLarge, handlers.KindPayloadTooLarge,
				"Request body too large")
			return
		}
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput,
			"Expected multipart/form-data")
		return
	}

	req := posts.CreatePostRequest{
		AuthorID:   viewer.ID,
		Body:       r.FormValue("body"),
		Visibility: posts.Visibility(r.FormValue("visibility")),
	}

	file, header, err := r.FormFile("media")
	switch {
	case err == nil:
		defer func() { _ = file.Close() }()
		req.Media = &posts.MediaUpload{
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Data:        file,
		}
	case errors.Is(err, http.ErrMissingFile):
		// Text-only post.
	default:
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput,
			"Invalid media upload")
		return
	}

	view, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, view)
}
