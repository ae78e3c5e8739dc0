package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/ember-social/ember/internal/api/handlers/feed"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/feeds"
)

// RegisterFeedRoutes registers the home feed endpoint
func RegisterFeedRoutes(r chi.Router, service feeds.Service, auth *middleware.AuthMiddleware) {
	handler := feed.NewGetFeedHandler(service)

	r.With(auth.RequireAuth).Get("/api/v1/feed", handler.HandleGetFeed)
}
