package password

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/dmitrymomot/authkit/pkg/async"
	"github.com/dmitrymomot/authkit/pkg/logger"
)

// Config holds argon2id cost settings and the size of the hashing pool.
type Config struct {
	MemoryKiB   uint32 `env:"PASSWORD_ARGON2_MEMORY_KIB" envDefault:"19456"` // Memory cost in KiB.
	Iterations  uint32 `env:"PASSWORD_ARGON2_ITERATIONS" envDefault:"2"`     // Time cost.
	Parallelism uint8  `env:"PASSWORD_ARGON2_PARALLELISM" envDefault:"1"`    // Lanes per hash.
	Workers     int    `env:"PASSWORD_WORKERS" envDefault:"0"`               // Concurrent hashes; 0 means GOMAXPROCS.
}

// Params converts the config into argon2id parameters with default salt and key sizes.
func (c Config) Params() Params {
	p := DefaultParams
	if c.MemoryKiB > 0 {
		p.Memory = c.MemoryKiB
	}
	if c.Iterations > 0 {
		p.Iterations = c.Iterations
	}
	if c.Parallelism > 0 {
		p.Parallelism = c.Parallelism
	}
	return p
}

// Hasher runs argon2id hashing and verification on a bounded worker pool.
type Hasher struct {
	params   Params
	workers  int
	pool     *async.Pool
	ownsPool bool
	logger   *slog.Logger
}

type Option func(*Hasher)

// WithParams overrides the argon2id parameters used for new hashes.
func WithParams(p Params) Option {
	return func(h *Hasher) {
		h.params = p
	}
}

// WithWorkers sets the number of concurrent hash computations.
func WithWorkers(n int) Option {
	return func(h *Hasher) {
		h.workers = n
	}
}

// WithPool runs jobs on a shared pool. The hasher does not close it.
func WithPool(p *async.Pool) Option {
	return func(h *Hasher) {
		h.pool = p
	}
}

// WithLogger sets a custom logger for the hasher.
func WithLogger(l *slog.Logger) Option {
	return func(h *Hasher) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHasher creates a hasher with DefaultParams unless overridden.
func NewHasher(opts ...Option) *Hasher {
	h := &Hasher{
		params: DefaultParams,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.pool == nil {
		h.pool = async.NewPool(h.workers)
		h.ownsPool = true
	}

	return h
}

// NewHasherFromConfig creates a hasher from environment-driven settings.
func NewHasherFromConfig(cfg Config, opts ...Option) *Hasher {
	base := []Option{WithParams(cfg.Params()), WithWorkers(cfg.Workers)}
	return NewHasher(append(base, opts...)...)
}

// Close releases the worker pool if the hasher created it.
func (h *Hasher) Close() {
	if h.ownsPool {
		h.pool.Close()
	}
}

// Hash derives a new salted argon2id hash off the caller's goroutine.
func (h *Hasher) Hash(ctx context.Context, password []byte) (string, error) {
	params := h.params
	future := async.Submit(ctx, h.pool, bytes.Clone(password), func(_ context.Context, pw []byte) (string, error) {
		return Generate(pw, params)
	})

	encoded, err := future.AwaitContext(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password",
			logger.Error(err),
			logger.Component("password"),
		)
		return "", err
	}
	return encoded, nil
}

// Verify compares password with encoded off the caller's goroutine.
// Returns nil on match, ErrMismatch, or ErrMalformedHash.
func (h *Hasher) Verify(ctx context.Context, encoded string, password []byte) error {
	future := async.Submit(ctx, h.pool, bytes.Clone(password), func(_ context.Context, pw []byte) (struct{}, error) {
		return struct{}{}, Compare(encoded, pw)
	})

	_, err := future.AwaitContext(ctx)
	switch {
	case err == nil, errors.Is(err, ErrMismatch):
	case errors.Is(err, ErrMalformedHash), errors.Is(err, ErrIncompatibleVersion):
		h.logger.WarnContext(ctx, "stored password hash cannot be parsed",
			logger.Error(err),
			logger.Component("password"),
		)
	default:
		h.logger.ErrorContext(ctx, "failed to verify password",
			logger.Error(err),
			logger.Component("password"),
		)
	}
	return err
}

// NeedsRehash reports whether encoded was produced with parameters other than
// the hasher's current ones. Unparseable hashes report false.
func (h *Hasher) NeedsRehash(encoded string) bool {
	if isBcrypt(encoded) {
		return true
	}
	p, err := ParamsOf(encoded)
	if err != nil {
		return false
	}
	return p.Memory != h.params.Memory ||
		p.Iterations != h.params.Iterations ||
		p.Parallelism != h.params.Parallelism ||
		p.KeyLength != h.params.KeyLength
}
