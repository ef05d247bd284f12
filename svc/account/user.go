package account

import (
	"time"

	"github.com/google/uuid"
)

// User is an email/password account. New users are inactive until they
// confirm their email address.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
	DateJoined   time.Time `json:"date_joined"`
}

// DisplayName is the greeting used in account emails.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}
