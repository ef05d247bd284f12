package redis_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/redis"
)

func setupStorage(t *testing.T) (*redis.Storage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewStorage(client), mr
}

func TestStoragePut(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stores empty value with expiry", func(t *testing.T) {
		s, mr := setupStorage(t)

		require.NoError(t, s.Put(ctx, "k", 15*time.Minute))

		val, err := mr.Get("k")
		require.NoError(t, err)
		assert.Empty(t, val)
		assert.Equal(t, 15*time.Minute, mr.TTL("k"))
	})

	t.Run("rejects empty key", func(t *testing.T) {
		s, _ := setupStorage(t)
		assert.ErrorIs(t, s.Put(ctx, "", time.Minute), redis.ErrEmptyKey)
	})

	t.Run("rejects non-positive ttl", func(t *testing.T) {
		s, mr := setupStorage(t)
		assert.ErrorIs(t, s.Put(ctx, "k", 0), redis.ErrInvalidTTL)
		assert.ErrorIs(t, s.Put(ctx, "k", -time.Second), redis.ErrInvalidTTL)
		assert.False(t, mr.Exists("k"))
	})
}

func TestStorageConsume(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("consumes once", func(t *testing.T) {
		s, mr := setupStorage(t)
		require.NoError(t, s.Put(ctx, "k", time.Minute))

		ok, err := s.Consume(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, mr.Exists("k"))

		ok, err = s.Consume(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing key", func(t *testing.T) {
		s, _ := setupStorage(t)
		ok, err := s.Consume(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired key", func(t *testing.T) {
		s, mr := setupStorage(t)
		require.NoError(t, s.Put(ctx, "k", time.Minute))
		mr.FastForward(2 * time.Minute)

		ok, err := s.Consume(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("concurrent consumers", func(t *testing.T) {
		s, _ := setupStorage(t)
		require.NoError(t, s.Put(ctx, "k", time.Minute))

		var (
			wg      sync.WaitGroup
			success atomic.Int32
		)
		for range 32 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := s.Consume(ctx, "k")
				if err == nil && ok {
					success.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), success.Load())
	})

	t.Run("server unavailable", func(t *testing.T) {
		s, mr := setupStorage(t)
		mr.Close()

		_, err := s.Consume(ctx, "k")
		assert.Error(t, err)
	})
}

func TestStoragePutMillisecondTTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, mr := setupStorage(t)

	require.NoError(t, s.Put(ctx, "k", 14*time.Minute+59*time.Second+300*time.Millisecond))
	assert.Equal(t, 14*time.Minute+59*time.Second+300*time.Millisecond, mr.TTL("k"))

	mr.FastForward(14*time.Minute + 59*time.Second + 300*time.Millisecond)
	ok, err := s.Consume(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
