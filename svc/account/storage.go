package account

import (
	"context"

	"github.com/google/uuid"
)

// UserStorage persists users. Lookups return ErrUserNotFound for missing
// rows and CreateUser returns ErrEmailAlreadyExists for a taken email.
type UserStorage interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	MarkActive(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
