package routes

import (
	"github.com/go-chi/chi/v5"

	commenthandlers "github.com/ember-social/ember/internal/api/handlers/comments"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/comments"
)

// RegisterCommentRoutes registers the comment endpoints
func RegisterCommentRoutes(r chi.Router, service comments.Service, auth *middleware.AuthMiddleware) {
	createHandler := commenthandlers.NewCreateHandler(service)
	listHandler := commenthandlers.NewListHandler(service)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Get("/api/v1/posts/{id}/comments", listHandler.HandleList)
		r.Post("/api/v1/posts/{id}/comments", createHandler.HandleCreate)
	})
}
