package token

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = fmt.Errorf("%w: expired", ErrInvalidToken)
	ErrInvalidKey    = errors.New("invalid token key material")
	ErrInvalidClaims = errors.New("invalid token claims")
)
