package confirmation

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MemoryStore is a single-process Store for development and tests.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]time.Time
	now     func() time.Time

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithMemoryClock overrides the store's time source.
func WithMemoryClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if now != nil {
			ms.now = now
		}
	}
}

// WithCleanupInterval sets how often expired records are swept.
// Set to 0 to disable the sweeper; expired records are still never consumed.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		records:         make(map[string]time.Time),
		now:             time.Now,
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(ms)
	}

	if ms.cleanupInterval > 0 {
		go ms.cleanup()
	}

	return ms
}

func (ms *MemoryStore) Put(_ context.Context, key string, ttl time.Duration) error {
	if key == "" {
		return errors.New("empty key")
	}
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.records[key] = ms.now().Add(ttl)
	return nil
}

func (ms *MemoryStore) Consume(_ context.Context, key string) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	expiresAt, ok := ms.records[key]
	if !ok {
		return false, nil
	}
	delete(ms.records, key)

	return ms.now().Before(expiresAt), nil
}

// Len returns the number of records, expired ones included.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.records)
}

// Close stops the background sweeper.
func (ms *MemoryStore) Close() {
	ms.closeOnce.Do(func() { close(ms.stopCleanup) })
}

func (ms *MemoryStore) cleanup() {
	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.removeExpired()
		case <-ms.stopCleanup:
			return
		}
	}
}

func (ms *MemoryStore) removeExpired() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for key, expiresAt := range ms.records {
		if !now.Before(expiresAt) {
			delete(ms.records, key)
		}
	}
}
