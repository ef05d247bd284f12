package confirmation_test

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/confirmation"
)

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func testConfig() confirmation.Config {
	return confirmation.Config{
		SecretKey:         hex.EncodeToString([]byte("0123456789abcdef0123456789abcdef")),
		HMACSecret:        "hmac-secret",
		ExpirationMinutes: 15,
		KeyPrefix:         "authkit",
	}
}

// clock is a manually advanced time source shared by service and store.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newMemoryService(t *testing.T, opts ...confirmation.Option) (*confirmation.Service, *confirmation.MemoryStore) {
	t.Helper()
	store := confirmation.NewMemoryStore(confirmation.WithCleanupInterval(0))
	t.Cleanup(store.Close)

	svc, err := confirmation.NewServiceFromConfig(testConfig(), store, opts...)
	require.NoError(t, err)
	return svc, store
}

// flip changes the character at pos so that the decoded bytes always differ.
func flip(tok string, pos int) string {
	b := []byte(tok)
	if i := strings.IndexByte(base64URLAlphabet, b[pos]); i >= 0 {
		b[pos] = base64URLAlphabet[i^0x20]
	} else {
		b[pos] = 'A'
	}
	return string(b)
}

type failingStore struct {
	putErr     error
	consumeErr error
}

func (f failingStore) Put(context.Context, string, time.Duration) error {
	return f.putErr
}

func (f failingStore) Consume(context.Context, string) (bool, error) {
	return f.consumeErr == nil, f.consumeErr
}

// recordingStore keeps the ttl of the last Put.
type recordingStore struct {
	ttl time.Duration
}

func (r *recordingStore) Put(_ context.Context, _ string, ttl time.Duration) error {
	r.ttl = ttl
	return nil
}

func (r *recordingStore) Consume(context.Context, string) (bool, error) {
	return true, nil
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}
