package account

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidInput       = errors.New("invalid input")

	// ErrConfirmationUnavailable means the token could not be issued or the
	// notification could not be sent; the caller may retry.
	ErrConfirmationUnavailable = errors.New("confirmation unavailable")

	// ErrActivationFailed means the confirmation token was redeemed but the
	// user could not be activated. The token is spent; a new one is needed.
	ErrActivationFailed = errors.New("account activation failed")
)

// InputError lists failed fields with a human readable message each.
// It matches ErrInvalidInput with errors.Is.
type InputError struct {
	Fields map[string]string
}

func (e *InputError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, ", "))
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}
