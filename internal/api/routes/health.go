package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"github.com/ember-social/ember/internal/api/handlers/health"
	"github.com/ember-social/ember/internal/blobstore"
)

// RegisterHealthRoutes registers the unauthenticated health endpoint
func RegisterHealthRoutes(r chi.Router, db *sql.DB, blobs blobstore.Store, version string) {
	handler := health.NewHandler(db, blobs, version)

	r.Get("/api/v1/health", handler.HandleHealth)
}
