package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ember-social/ember/internal/api/handlers"
	"github.com/ember-social/ember/internal/core/users"
	"github.com/ember-social/ember/internal/identity"
)

type contextKey string

const viewerKey contextKey = "viewer"

// AuthMiddleware enforces bearer authentication for protected routes. The
// token is resolved against the identity provider and the local user row is
// upserted on first sight, so every handler downstream can rely on a
// *users.User in the context.
type AuthMiddleware struct {
	resolver identity.Resolver
	users    users.Service
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(resolver identity.Resolver, users users.Service) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver, users: users}
}

// RequireAuth ensures the request carries a valid bearer token.
// If not authenticated, returns 401; if the identity provider is down,
// returns 503. On success the local viewer is injected into the context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			handlers.WriteError(w, http.StatusUnauthorized, handlers.KindUnauthenticated,
				"Missing Authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			handlers.WriteError(w, http.StatusUnauthorized, handlers.KindUnauthenticated,
				"Invalid Authorization header format. Expected: Bearer <token>")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		id, err := m.resolver.Resolve(r.Context(), token)
		if err != nil {
			if errors.Is(err, identity.ErrProviderUnavailable) {
				slog.Warn("identity provider unavailable", "path", r.URL.Path, "error", err)
				handlers.WriteError(w, http.StatusServiceUnavailable, handlers.KindStorageUnavailable,
					"Identity provider unavailable")
				return
			}
			slog.Info("auth failure", "path", r.URL.Path, "error", err)
			handlers.WriteError(w, http.StatusUnauthorized, handlers.KindUnauthenticated,
				"Invalid or expired token")
			return
		}

		viewer, err := m.users.EnsureUser(r.Context(), id.Subject, id.Email)
		if err != nil {
			slog.Error("failed to ensure user", "subject", id.Subject, "error", err)
			handlers.WriteError(w, http.StatusInternalServerError, handlers.KindInternal,
				"An internal error occurred")
			return
		}

		ctx := context.WithValue(r.Context(), viewerKey, viewer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetViewer extracts the authenticated viewer from the request context.
// Returns nil on unauthenticated requests.
func GetViewer(r *http.Request) *users.User {
	viewer, _ := r.Context().Value(viewerKey).(*users.User)
	return viewer
}

// SetTestViewer injects a viewer into the context. Test use only.
func SetTestViewer(ctx context.Context, viewer *users.User) context.Context {
	return context.WithValue(ctx, viewerKey, viewer)
}
