package session

import "errors"

var (
	// ErrSessionNotFound indicates the request carries no live session.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrStoreUnavailable wraps store failures other than a missing session.
	ErrStoreUnavailable = errors.New("session.store_unavailable")

	// ErrTokenGeneration indicates token generation failed
	ErrTokenGeneration = errors.New("session.token_generation_failed")
)
