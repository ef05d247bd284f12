package confirmation

import (
	"context"
	"time"
)

// Store keeps liveness records. Consume must check and delete atomically:
// for a given key at most one call ever reports true.
type Store interface {
	Put(ctx context.Context, key string, ttl time.Duration) error
	Consume(ctx context.Context, key string) (bool, error)
}
