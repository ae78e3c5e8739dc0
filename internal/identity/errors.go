package identity

import "errors"

var (
	// ErrInvalidToken is returned for malformed, expired, or mis-issued
	// credentials. Maps to 401.
	ErrInvalidToken = errors.New("invalid bearer token")

	// ErrProviderUnavailable is returned when the identity provider
	// cannot be reached (e.g. JWKS fetch failure). Maps to 503.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)
