package health

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/blobstore"
)

// Handler serves the unauthenticated health endpoint
type Handler struct {
	db      *sql.DB
	blobs   blobstore.Store
	version string
}

// NewHandler creates a new health handler
func NewHandler(db *sql.DB, blobs blobstore.Store, version string) *Handler {
	return &Handler{db: db, blobs: blobs, version: version}
}

type response struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Deps    map[string]string `json:"deps"`
}

// HandleHealth handles GET /api/v1/health
// Reports degraded rather than failing when a dependency is down; load
// balancers decide what to do with it.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := map[string]string{
		"database": "ok",
		"blobs":    "ok",
	}
	status := "ok"

	if err := h.db.PingContext(ctx); err != nil {
		deps["database"] = "unavailable"
		status = "degraded"
	}

	if _, err := h.blobs.URLFor(ctx, "healthz"); err != nil {
		deps["blobs"] = "unavailable"
		status = "degraded"
	}

	handlers.WriteJSON(w, http.StatusOK, response{
		Status:  status,
		Version: h.version,
		Deps:    deps,
	})
}
