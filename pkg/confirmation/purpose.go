package confirmation

import "time"

// Purpose tags what a token confirms. It is part of the store key.
type Purpose string

const (
	PurposeConfirmation   Purpose = "confirmation"
	PurposePasswordChange Purpose = "password_change"
)

// PasswordChangeLifetime is the fixed validity window of password-change tokens.
const PasswordChangeLifetime = time.Hour

func (p Purpose) String() string {
	return string(p)
}

func (p Purpose) Valid() bool {
	switch p {
	case PurposeConfirmation, PurposePasswordChange:
		return true
	}
	return false
}
