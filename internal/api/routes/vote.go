package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/ember-social/ember/internal/api/handlers/vote"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/comments"
)

// RegisterVoteRoutes registers the comment vote endpoint
func RegisterVoteRoutes(r chi.Router, service comments.Service, auth *middleware.AuthMiddleware) {
	handler := vote.NewVoteHandler(service)

	r.With(auth.RequireAuth).Post("/api/v1/comments/{id}/vote", handler.HandleVote)
}
