package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/ember-social/ember/internal/api/handlers/user"
	"github.com/ember-social/ember/internal/api/middleware"
	"github.com/ember-social/ember/internal/core/feeds"
	"github.com/ember-social/ember/internal/core/follows"
	"github.com/ember-social/ember/internal/core/users"
)

// RegisterUserRoutes registers the profile and follow endpoints
func RegisterUserRoutes(r chi.Router, userService users.Service, followService follows.Service, feedService feeds.Service, auth *middleware.AuthMiddleware) {
	profileHandler := user.NewProfileHandler(userService)
	updateHandler := user.NewUpdateProfileHandler(userService)
	followHandler := user.NewFollowHandler(followService)
	postsHandler := user.NewPostsHandler(feedService)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Patch("/api/v1/users/me", updateHandler.HandleUpdateProfile)
		r.Get("/api/v1/users/{id}/profile", profileHandler.HandleGetProfile)
		r.Get("/api/v1/users/{id}/posts", postsHandler.HandleGetPosts)
		r.Post("/api/v1/users/{id}/follow", followHandler.HandleFollow)
		r.Delete("/api/v1/users/{id}/follow", followHandler.HandleUnfollow)
	})
}
