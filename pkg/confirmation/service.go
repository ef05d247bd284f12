package confirmation

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/token"
)

const (
	defaultKeyPrefix = "authkit"
	sessionKeySize   = 32
)

// Codec seals and opens token claims. *token.Codec implements it.
type Codec interface {
	Encrypt(claims token.Claims) (string, error)
	Decrypt(tok string) (token.Claims, error)
}

// Token is the result of a successful verification.
type Token struct {
	UserID uuid.UUID
}

// Service issues and verifies single-use tokens.
// It holds no mutable state; all exclusion happens in the Store.
type Service struct {
	codec    Codec
	store    Store
	lifetime time.Duration
	prefix   string
	now      func() time.Time
	random   io.Reader
	logger   *slog.Logger
}

type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for token expiration.
// NewServiceFromConfig also hands it to the codec for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRandom overrides the session key entropy source.
func WithRandom(r io.Reader) Option {
	return func(s *Service) {
		if r != nil {
			s.random = r
		}
	}
}

// WithKeyPrefix sets the first segment of every store key.
func WithKeyPrefix(prefix string) Option {
	return func(s *Service) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewService wires a codec and a store. lifetime is the confirmation-purpose
// window; password-change tokens always live PasswordChangeLifetime.
func NewService(codec Codec, store Store, lifetime time.Duration, opts ...Option) (*Service, error) {
	if codec == nil {
		return nil, fmt.Errorf("%w: nil codec", ErrInvalidConfig)
	}
	s, err := newService(store, lifetime, opts)
	if err != nil {
		return nil, err
	}
	s.codec = codec
	return s, nil
}

// NewServiceFromConfig validates cfg and builds a PASETO codec from it.
// All errors match ErrInvalidConfig.
func NewServiceFromConfig(cfg Config, store Store, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts = append([]Option{WithKeyPrefix(cfg.KeyPrefix)}, opts...)
	s, err := newService(store, cfg.Lifetime(), opts)
	if err != nil {
		return nil, err
	}

	key, _ := cfg.secretKey()
	codec, err := token.NewCodec(key, []byte(cfg.HMACSecret), token.WithClock(s.now))
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	s.codec = codec

	s.logger.Info("confirmation tokens ready",
		logger.Component("confirmation"),
		logger.KeyID(codec.KeyID()),
		logger.TTL(s.lifetime),
	)

	return s, nil
}

func newService(store Store, lifetime time.Duration, opts []Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: nil store", ErrInvalidConfig)
	}
	if lifetime < time.Second {
		return nil, fmt.Errorf("%w: lifetime must be at least one second", ErrInvalidConfig)
	}

	s := &Service{
		store:    store,
		lifetime: lifetime,
		prefix:   defaultKeyPrefix,
		now:      time.Now,
		random:   rand.Reader,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	if strings.Contains(s.prefix, ":") {
		return nil, fmt.Errorf("%w: key prefix must not contain ':'", ErrInvalidConfig)
	}

	return s, nil
}

// Lifetime returns the validity window of tokens issued for p.
func (s *Service) Lifetime(p Purpose) (time.Duration, error) {
	switch p {
	case PurposeConfirmation:
		return s.lifetime, nil
	case PurposePasswordChange:
		return PasswordChangeLifetime, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPurpose, string(p))
}

// Issue records a fresh liveness entry for userID and returns the token that
// redeems it. No token is returned unless the store write succeeded.
func (s *Service) Issue(ctx context.Context, userID uuid.UUID, purpose Purpose) (string, error) {
	if userID == uuid.Nil {
		return "", ErrInvalidUserID
	}

	lifetime, err := s.Lifetime(purpose)
	if err != nil {
		return "", err
	}

	sessionKey, err := s.sessionKey()
	if err != nil {
		return "", fmt.Errorf("generate session key: %w", err)
	}

	// The claim carries whole seconds; the record expires at that same instant.
	issuedAt := s.now()
	expiresAt := issuedAt.Add(lifetime).Truncate(time.Second)
	ttl := expiresAt.Sub(issuedAt)

	if err := s.store.Put(ctx, s.storeKey(purpose, sessionKey), ttl); err != nil {
		s.logger.ErrorContext(ctx, "failed to record confirmation token",
			logger.Component("confirmation"),
			logger.Purpose(purpose.String()),
			logger.UserID(userID),
			logger.Error(err),
		)
		return "", errors.Join(ErrStoreUnavailable, err)
	}

	tok, err := s.codec.Encrypt(token.Claims{
		UserID:     userID,
		SessionKey: sessionKey,
		Expiration: expiresAt,
	})
	if err != nil {
		// The orphaned record expires on its own.
		return "", fmt.Errorf("encrypt confirmation token: %w", err)
	}

	return tok, nil
}

// Verify opens tok and consumes its liveness record for purpose.
// Exactly one of any number of concurrent calls for the same token succeeds.
func (s *Service) Verify(ctx context.Context, tok string, purpose Purpose) (Token, error) {
	if !purpose.Valid() {
		return Token{}, fmt.Errorf("%w: %q", ErrUnknownPurpose, string(purpose))
	}

	claims, err := s.codec.Decrypt(tok)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			s.logger.DebugContext(ctx, "confirmation token expired",
				logger.Component("confirmation"),
				logger.Purpose(purpose.String()),
			)
			return Token{}, ErrAlreadyUsedOrExpired
		}
		s.logger.DebugContext(ctx, "confirmation token rejected",
			logger.Component("confirmation"),
			logger.Purpose(purpose.String()),
			logger.Reason(err.Error()),
		)
		return Token{}, ErrInvalidToken
	}

	ok, err := s.store.Consume(ctx, s.storeKey(purpose, claims.SessionKey))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to consume confirmation token",
			logger.Component("confirmation"),
			logger.Purpose(purpose.String()),
			logger.UserID(claims.UserID),
			logger.Error(err),
		)
		return Token{}, errors.Join(ErrStoreUnavailable, err)
	}
	if !ok {
		s.logger.DebugContext(ctx, "confirmation token already used or expired",
			logger.Component("confirmation"),
			logger.Purpose(purpose.String()),
			logger.UserID(claims.UserID),
		)
		return Token{}, ErrAlreadyUsedOrExpired
	}

	return Token{UserID: claims.UserID}, nil
}

func (s *Service) storeKey(purpose Purpose, sessionKey string) string {
	return s.prefix + ":" + string(purpose) + ":" + sessionKey
}

func (s *Service) sessionKey() (string, error) {
	b := make([]byte, sessionKeySize)
	if _, err := io.ReadFull(s.random, b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
