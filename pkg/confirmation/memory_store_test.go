package confirmation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/confirmation"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("put and consume once", func(t *testing.T) {
		ms := confirmation.NewMemoryStore(confirmation.WithCleanupInterval(0))
		t.Cleanup(ms.Close)

		require.NoError(t, ms.Put(ctx, "k", time.Minute))

		ok, err := ms.Consume(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = ms.Consume(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired record is not consumed", func(t *testing.T) {
		clk := newClock()
		ms := confirmation.NewMemoryStore(
			confirmation.WithCleanupInterval(0),
			confirmation.WithMemoryClock(clk.Now),
		)
		t.Cleanup(ms.Close)

		require.NoError(t, ms.Put(ctx, "k", time.Minute))
		clk.Advance(time.Minute)

		ok, err := ms.Consume(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, ms.Len())
	})

	t.Run("rejects bad input", func(t *testing.T) {
		ms := confirmation.NewMemoryStore(confirmation.WithCleanupInterval(0))
		t.Cleanup(ms.Close)

		assert.Error(t, ms.Put(ctx, "", time.Minute))
		assert.Error(t, ms.Put(ctx, "k", 0))
		assert.Zero(t, ms.Len())
	})

	t.Run("sweeper removes expired records", func(t *testing.T) {
		clk := newClock()
		ms := confirmation.NewMemoryStore(
			confirmation.WithCleanupInterval(5*time.Millisecond),
			confirmation.WithMemoryClock(clk.Now),
		)
		t.Cleanup(ms.Close)

		require.NoError(t, ms.Put(ctx, "short", time.Second))
		require.NoError(t, ms.Put(ctx, "long", time.Hour))
		clk.Advance(2 * time.Second)

		assert.Eventually(t, func() bool { return ms.Len() == 1 }, time.Second, 5*time.Millisecond)

		ok, err := ms.Consume(ctx, "long")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		ms := confirmation.NewMemoryStore()
		ms.Close()
		ms.Close()
	})
}
