package usecase

import "errors"

// Service-level sentinels. Domain packages carry their own, more specific
// errors (see squad.Err*); these cover request shape, lookups and auth.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")

	// ErrUnauthorized means the bearer token was missing, invalid or inactive.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDependencyUnavailable marks failures of the identity provider or the
	// store that the caller may retry.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
