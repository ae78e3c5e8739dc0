package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/ember-social/ember/internal/api/handlers/post"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/posts"
)

// RegisterPostRoutes registers the post endpoints
func RegisterPostRoutes(r chi.Router, service posts.Service, auth *middleware.AuthMiddleware) {
	createHandler := post.NewCreateHandler(service)
	getHandler := post.NewGetHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	likeHandler := post.NewLikeHandler(service)
	viewHandler := post.NewViewHandler(service)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Post("/api/v1/posts", createHandler.HandleCreate)
		r.Get("/api/v1/posts/{id}", getHandler.HandleGet)
		r.Delete("/api/v1/posts/{id}", deleteHandler.HandleDelete)
		r.Post("/api/v1/posts/{id}/like", likeHandler.HandleLike)
		r.Delete("/api/v1/posts/{id}/like", likeHandler.HandleUnlike)
		r.Post("/api/v1/posts/{id}/view", viewHandler.HandleView)
	})
}
