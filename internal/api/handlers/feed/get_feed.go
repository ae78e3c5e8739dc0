package feed

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/feeds"
)

// GetFeedHandler handles home feed requests
type GetFeedHandler struct {
	service feeds.Service
}

// NewGetFeedHandler creates a new feed handler
func NewGetFeedHandler(service feeds.Service) *GetFeedHandler {
	return &GetFeedHandler{service: service}
}

// HandleGetFeed handles GET /api/v1/feed
// Query parameters: cursor (opaque), limit (max 50).
func (h *GetFeedHandler) HandleGetFeed(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	if viewer == nil {
		handlers.WriteError(w, http.StatusUnauthorized, handlers.KindUnauthenticated,
			"Authentication required")
		return
	}

	cursor, limit, ok := ParsePagination(w, r)
	if !ok {
		return
	}

	page, err := h.service.HomeFeed(r.Context(), viewer.ID, cursor, limit)
	if err != nil {
		if errors.Is(err, feeds.ErrInvalidCursor) {
			handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput,
				"Invalid cursor")
			return
		}
		handlers.WriteInternal(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, page)
}

// ParsePagination reads the cursor and limit query parameters shared by
// the feed endpoints. On a bad limit it writes the error response and
// returns ok=false.
func ParsePagination(w http.ResponseWriter, r *http.Request) (cursor *string, limit int, ok bool) {
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		cursor = &raw
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			handlers.WriteError(w, http.StatusBadRequest, handlers.KindInvalidInput,
				"limit must be a positive integer")
			return nil, 0, false
		}
		limit = n
	}

	return cursor, limit, true
}
