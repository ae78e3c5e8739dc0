package identity

import "context"

// Identity is the result of resolving a bearer credential: a stable opaque
// subject string from the identity provider, plus an optional email.
type Identity struct {
	Subject string
	Email   string
}

// Resolver validates a bearer credential and returns the caller's identity.
// Implementations must treat the token as opaque beyond validation; the
// subject is the only field the core relies on.
type Resolver interface {
	Resolve(ctx context.Context, bearer string) (*Identity, error)
}
