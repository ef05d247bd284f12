package confirmation

import "errors"

var (
	ErrInvalidToken         = errors.New("invalid confirmation token")
	ErrAlreadyUsedOrExpired = errors.New("confirmation token already used or expired")
	ErrStoreUnavailable     = errors.New("confirmation store unavailable")
	ErrUnknownPurpose       = errors.New("unknown confirmation purpose")
	ErrInvalidConfig        = errors.New("invalid confirmation config")
	ErrInvalidUserID        = errors.New("invalid user id")
)
