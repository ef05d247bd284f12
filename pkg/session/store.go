package session

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

// Store persists sessions by token.
type Store interface {
	// Create stores s until s.ExpiresAt.
	Create(ctx context.Context, s *Session) error
	// Get returns ErrSessionNotFound for unknown or expired tokens.
	Get(ctx context.Context, token string) (*Session, error)
	// Delete returns ErrSessionNotFound if nothing was removed.
	Delete(ctx context.Context, token string) error
}

// RedisStore keeps sessions as JSON values that expire with the session.
// Keys hold a BLAKE2b digest of the token, never the token itself.
type RedisStore struct {
	db     redis.UniversalClient
	prefix string
	now    func() time.Time
}

var _ Store = (*RedisStore)(nil)

type RedisStoreOption func(*RedisStore)

// WithStoreClock replaces time.Now when computing the key expiry.
func WithStoreClock(now func() time.Time) RedisStoreOption {
	return func(s *RedisStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewRedisStore keys sessions as "<prefix>:session:<digest>".
func NewRedisStore(client redis.UniversalClient, prefix string, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{db: client, prefix: prefix, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("session already expired at %s", sess.ExpiresAt.Format(time.RFC3339))
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.db.Set(ctx, s.key(sess.Token), data, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.db.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	sess.Token = token
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	n, err := s.db.Del(ctx, s.key(token)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *RedisStore) key(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return s.prefix + ":session:" + hex.EncodeToString(sum[:])
}
