package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

// Manager issues, resolves and destroys login sessions.
type Manager struct {
	store     Store
	transport Transport
	ttl       time.Duration
	now       func() time.Time
	random    io.Reader
	logger    *slog.Logger
}

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithTTL sets the session lifetime. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithRandom replaces crypto/rand as the token source.
func WithRandom(r io.Reader) Option {
	return func(m *Manager) {
		if r != nil {
			m.random = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

func New(store Store, transport Transport, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		transport: transport,
		ttl:       DefaultConfig().TTL,
		now:       time.Now,
		random:    rand.Reader,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewFromConfig creates a new Manager from the provided Config.
// A cookie transport named cfg.CookieName must be passed in by the caller.
func NewFromConfig(cfg Config, store Store, transport Transport, opts ...Option) *Manager {
	return New(store, transport, append([]Option{WithTTL(cfg.TTL)}, opts...)...)
}

// Authenticate starts a fresh session for the user and hands its token to the
// client. A session presented with the request is revoked first, so a token
// obtained before login is never promoted.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID uuid.UUID, email string) (*Session, error) {
	if old, err := m.transport.GetToken(r); err == nil {
		if err := m.store.Delete(ctx, old); err != nil && !errors.Is(err, ErrSessionNotFound) {
			m.logger.WarnContext(ctx, "failed to revoke previous session",
				logger.UserID(userID),
				logger.Error(err),
				logger.Component("session"),
			)
		}
	}

	token, err := m.token()
	if err != nil {
		return nil, err
	}

	now := m.now()
	sess := &Session{
		Token:     token,
		UserID:    userID,
		UserEmail: email,
		CreatedAt: now.UTC(),
		ExpiresAt: now.Add(m.ttl).UTC(),
	}
	if err := m.store.Create(ctx, sess); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	if err := m.transport.SetToken(w, token, m.ttl); err != nil {
		_ = m.store.Delete(ctx, token)
		return nil, err
	}

	m.logger.DebugContext(ctx, "session started",
		logger.UserID(userID),
		logger.TTL(m.ttl),
		logger.Component("session"),
	)
	return sess, nil
}

// Get resolves the session carried by r.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}

	sess, err := m.store.Get(ctx, token)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return nil, ErrSessionNotFound
	case err != nil:
		return nil, errors.Join(ErrStoreUnavailable, err)
	case sess.IsExpired(m.now()):
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Destroy revokes the session carried by r and clears it on the client.
// It returns the revoked session, or ErrSessionNotFound when r carried none.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	sess, err := m.Get(ctx, r)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			m.transport.ClearToken(w)
		}
		return nil, err
	}

	if err := m.store.Delete(ctx, sess.Token); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	m.transport.ClearToken(w)
	return sess, nil
}

func (m *Manager) token() (string, error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(m.random, b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
