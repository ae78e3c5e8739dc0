package identity

import (
	"context"
	"crypto/sha256"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// cacheTTL keeps resolution results fresh enough that revoked tokens
	// stop working within minutes.
	cacheTTL = 5 * time.Minute

	// cacheSize bounds memory; one entry per distinct active token.
	cacheSize = 10000
)

// CachingResolver wraps a Resolver with a bounded, expiring LRU so that the
// per-request auth path does not hit the identity provider every time.
// Entries are keyed by a digest of the token, never the token itself.
type CachingResolver struct {
	inner Resolver
	cache *expirable.LRU[[32]byte, *Identity]
}

// NewCachingResolver wraps inner with an in-memory result cache.
func NewCachingResolver(inner Resolver) *CachingResolver {
	return &CachingResolver{
		inner: inner,
		cache: expirable.NewLRU[[32]byte, *Identity](cacheSize, nil, cacheTTL),
	}
}

// Resolve returns a cached identity when present; otherwise it resolves
// through the inner resolver and caches the success. Failures are never
// cached, so transient provider errors clear on retry.
func (r *CachingResolver) Resolve(ctx context.Context, bearer string) (*Identity, error) {
	key := sha256.Sum256([]byte(bearer))

	if ident, ok := r.cache.Get(key); ok {
		return ident, nil
	}

	ident, err := r.inner.Resolve(ctx, bearer)
	if err != nil {
		return nil, err
	}

	r.cache.Add(key, ident)
	return ident, nil
}
