package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is a liveness ledger on top of Redis: a key either exists, and can
// be consumed exactly once, or it does not.
type Storage struct {
	db redis.UniversalClient
}

func NewStorage(client redis.UniversalClient) *Storage {
	return &Storage{db: client}
}

// Put records key with an empty value that expires after ttl.
// Value and expiry are written in a single SET command (EX, or PX for
// sub-second ttl), so the key can never exist without an expiry.
func (s *Storage) Put(ctx context.Context, key string, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	return s.db.Set(ctx, key, "", ttl).Err()
}

// Consume atomically reads and deletes key with GETDEL.
// It reports true only to the single caller that observed the key.
func (s *Storage) Consume(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	err := s.db.GetDel(ctx, key).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
