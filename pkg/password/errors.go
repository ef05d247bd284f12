package password

import "errors"

var (
	ErrMismatch            = errors.New("password: hash and password do not match")
	ErrMalformedHash       = errors.New("password: malformed hash string")
	ErrIncompatibleVersion = errors.New("password: incompatible argon2 version")
	ErrInvalidParams       = errors.New("password: invalid argon2 parameters")
)
