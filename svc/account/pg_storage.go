package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/authkit/pkg/pg"
)

const userColumns = `id, email, password, first_name, last_name, is_active, is_staff, is_superuser, thumbnail, date_joined`

// PGStorage is a UserStorage backed by the users table.
type PGStorage struct {
	pool *pgxpool.Pool
}

var _ UserStorage = (*PGStorage)(nil)

func NewPGStorage(pool *pgxpool.Pool) *PGStorage {
	return &PGStorage{pool: pool}
}

func (s *PGStorage) CreateUser(ctx context.Context, u *User) error {
	const q = `INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.pool.Exec(ctx, q,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.IsActive, u.IsStaff, u.IsSuperuser, u.Thumbnail, u.DateJoined,
	)
	if pg.IsDuplicateKeyError(err) {
		return ErrEmailAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PGStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *PGStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *PGStorage) MarkActive(ctx context.Context, id uuid.UUID) error {
	return s.update(ctx, `UPDATE users SET is_active = TRUE WHERE id = $1`, id)
}

func (s *PGStorage) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return s.update(ctx, `UPDATE users SET password = $2 WHERE id = $1`, id, passwordHash)
}

func (s *PGStorage) update(ctx context.Context, q string, args ...any) error {
	tag, err := s.pool.Exec(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.Thumbnail, &u.DateJoined,
	)
	if pg.IsNotFoundError(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}
