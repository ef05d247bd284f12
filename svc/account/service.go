package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/confirmation"
	"github.com/dmitrymomot/authkit/pkg/logger"
)

// PasswordHasher is satisfied by *password.Hasher.
type PasswordHasher interface {
	Hash(ctx context.Context, password []byte) (string, error)
	Verify(ctx context.Context, encoded string, password []byte) error
	NeedsRehash(encoded string) bool
}

// TokenService is satisfied by *confirmation.Service.
type TokenService interface {
	Issue(ctx context.Context, userID uuid.UUID, purpose confirmation.Purpose) (string, error)
	Verify(ctx context.Context, token string, purpose confirmation.Purpose) (confirmation.Token, error)
	Lifetime(purpose confirmation.Purpose) (time.Duration, error)
}

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

// ChangePasswordInput redeems a password-change token.
type ChangePasswordInput struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type emailInput struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type Service struct {
	storage  UserStorage
	hasher   PasswordHasher
	tokens   TokenService
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	// Hash compared against when the email is unknown, so that a miss costs
	// as much as a wrong password.
	dummyHash func() (string, error)
}

// Option configures a Service during construction.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for DateJoined.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(storage UserStorage, hasher PasswordHasher, tokens TokenService, notifier Notifier, opts ...Option) *Service {
	s := &Service{
		storage:  storage,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.dummyHash = sync.OnceValues(func() (string, error) {
		return s.hasher.Hash(context.Background(), []byte(uuid.NewString()))
	})

	return s
}

// Register creates an inactive user and emails a confirmation link.
// If the user was stored but the link could not be delivered, the user is
// returned together with ErrConfirmationUnavailable.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	switch _, err := s.storage.GetUserByEmail(ctx, in.Email); {
	case err == nil:
		return nil, ErrEmailAlreadyExists
	case !errors.Is(err, ErrUserNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, []byte(in.Password))
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		DateJoined:   s.now().UTC(),
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		logger.UserID(user.ID),
		logger.Component("account"),
	)

	if err := s.sendConfirmation(ctx, user); err != nil {
		return user, err
	}
	return user, nil
}

// ConfirmRegistration redeems a confirmation token and activates its user.
// Token failures are the confirmation package errors. A storage failure after
// the token was redeemed is ErrActivationFailed.
func (s *Service) ConfirmRegistration(ctx context.Context, token string) (*User, error) {
	tok, err := s.tokens.Verify(ctx, token, confirmation.PurposeConfirmation)
	if err != nil {
		return nil, err
	}

	if err := s.storage.MarkActive(ctx, tok.UserID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "confirmation token spent but user not activated",
			logger.UserID(tok.UserID),
			logger.Error(err),
			logger.Component("account"),
		)
		return nil, errors.Join(ErrActivationFailed, err)
	}

	user, err := s.storage.GetUserByID(ctx, tok.UserID)
	if err != nil {
		// Already active; the row is only needed for the response.
		s.logger.WarnContext(ctx, "reload of confirmed user failed",
			logger.UserID(tok.UserID),
			logger.Error(err),
			logger.Component("account"),
		)
		user = &User{ID: tok.UserID, IsActive: true}
	}

	s.logger.InfoContext(ctx, "user confirmed email",
		logger.UserID(user.ID),
		logger.Component("account"),
	)
	return user, nil
}

// ResendConfirmation emails a new confirmation link. Unknown and already
// active addresses succeed without sending anything.
func (s *Service) ResendConfirmation(ctx context.Context, email string) error {
	user, err := s.lookupForLink(ctx, email)
	if err != nil || user == nil {
		return err
	}
	if user.IsActive {
		s.logger.DebugContext(ctx, "confirmation resend skipped, user already active",
			logger.UserID(user.ID),
			logger.Component("account"),
		)
		return nil
	}
	return s.sendConfirmation(ctx, user)
}

// Login checks the credentials of an active user. Every failure is
// ErrInvalidCredentials. Hashes made with outdated parameters are replaced
// on success.
func (s *Service) Login(ctx context.Context, in LoginInput) (*User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.storage.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("lookup user: %w", err)
		}
		if dummy, herr := s.dummyHash(); herr == nil {
			_ = s.hasher.Verify(ctx, dummy, []byte(in.Password))
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Verify(ctx, user.PasswordHash, []byte(in.Password)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.InfoContext(ctx, "login rejected, email not confirmed",
			logger.UserID(user.ID),
			logger.Component("account"),
		)
		return nil, ErrInvalidCredentials
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user, in.Password)
	}

	s.logger.InfoContext(ctx, "user logged in",
		logger.UserID(user.ID),
		logger.Component("account"),
	)
	return user, nil
}

// RequestPasswordChange emails a password-change link. Unknown and
// unconfirmed addresses succeed without sending anything.
func (s *Service) RequestPasswordChange(ctx context.Context, email string) error {
	user, err := s.lookupForLink(ctx, email)
	if err != nil || user == nil {
		return err
	}
	if !user.IsActive {
		s.logger.DebugContext(ctx, "password change skipped, user not active",
			logger.UserID(user.ID),
			logger.Component("account"),
		)
		return nil
	}

	tok, ttl, err := s.issue(ctx, user, confirmation.PurposePasswordChange)
	if err != nil {
		return err
	}
	if err := s.notifier.SendPasswordChange(ctx, user, tok, ttl); err != nil {
		return s.notifyFailed(ctx, user, confirmation.PurposePasswordChange, err)
	}
	return nil
}

// ChangePassword redeems a password-change token and stores the new password.
// The input is validated before the token is consumed.
func (s *Service) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	tok, err := s.tokens.Verify(ctx, in.Token, confirmation.PurposePasswordChange)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(ctx, []byte(in.Password))
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.storage.UpdatePassword(ctx, tok.UserID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.logger.InfoContext(ctx, "user changed password",
		logger.UserID(tok.UserID),
		logger.Component("account"),
	)
	return nil
}

// lookupForLink returns (nil, nil) for unknown addresses.
func (s *Service) lookupForLink(ctx context.Context, email string) (*User, error) {
	in := emailInput{Email: normalizeEmail(email)}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, ErrUserNotFound) {
		s.logger.DebugContext(ctx, "account link requested for unknown email",
			logger.Component("account"),
		)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

func (s *Service) sendConfirmation(ctx context.Context, user *User) error {
	tok, ttl, err := s.issue(ctx, user, confirmation.PurposeConfirmation)
	if err != nil {
		return err
	}
	if err := s.notifier.SendConfirmation(ctx, user, tok, ttl); err != nil {
		return s.notifyFailed(ctx, user, confirmation.PurposeConfirmation, err)
	}
	return nil
}

func (s *Service) issue(ctx context.Context, user *User, purpose confirmation.Purpose) (string, time.Duration, error) {
	ttl, err := s.tokens.Lifetime(purpose)
	if err != nil {
		return "", 0, err
	}
	tok, err := s.tokens.Issue(ctx, user.ID, purpose)
	if err != nil {
		return "", 0, errors.Join(ErrConfirmationUnavailable, err)
	}
	return tok, ttl, nil
}

func (s *Service) notifyFailed(ctx context.Context, user *User, purpose confirmation.Purpose, err error) error {
	s.logger.ErrorContext(ctx, "failed to send account email",
		logger.UserID(user.ID),
		logger.Purpose(purpose.String()),
		logger.Error(err),
		logger.Component("account"),
	)
	return errors.Join(ErrConfirmationUnavailable, err)
}

func (s *Service) rehash(ctx context.Context, user *User, password string) {
	hash, err := s.hasher.Hash(ctx, []byte(password))
	if err == nil {
		err = s.storage.UpdatePassword(ctx, user.ID, hash)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to upgrade password hash",
			logger.UserID(user.ID),
			logger.Error(err),
			logger.Component("account"),
		)
		return
	}
	user.PasswordHash = hash
}
