package identity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// jwksRefreshInterval bounds how stale the provider's key set may get.
const jwksRefreshInterval = 15 * time.Minute

// JWTResolver validates bearer tokens as JWTs signed by the identity
// provider, verifying signature, issuer, audience, and expiry against the
// provider's published JWKS.
type JWTResolver struct {
	jwksURL  string
	issuer   string
	audience string
	cache    *jwk.Cache
	logger   *slog.Logger
}

// NewJWTResolver creates a resolver that fetches and auto-refreshes the
// provider's JWKS. The supplied context bounds the lifetime of the
// background refresher.
func NewJWTResolver(ctx context.Context, jwksURL, issuer, audience string, logger *slog.Logger) (*JWTResolver, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cache := jwk.NewCache(ctx)
	if err := cache.Register(jwksURL, jwk.WithMinRefreshInterval(jwksRefreshInterval)); err != nil {
		return nil, fmt.Errorf("failed to register JWKS URL: %w", err)
	}

	return &JWTResolver{
		jwksURL:  jwksURL,
		issuer:   issuer,
		audience: audience,
		cache:    cache,
		logger:   logger,
	}, nil
}

// Resolve verifies the token and extracts the subject and optional email.
func (r *JWTResolver) Resolve(ctx context.Context, bearer string) (*Identity, error) {
	keySet, err := r.cache.Get(ctx, r.jwksURL)
	if err != nil {
		r.logger.Error("JWKS fetch failed", "url", r.jwksURL, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	token, err := jwt.Parse([]byte(bearer),
		jwt.WithKeySet(keySet),
		jwt.WithIssuer(r.issuer),
		jwt.WithAudience(r.audience),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	subject := token.Subject()
	if subject == "" {
		return nil, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}

	ident := &Identity{Subject: subject}
	if email, ok := token.PrivateClaims()["email"].(string); ok {
		ident.Email = email
	}

	return ident, nil
}
