package password_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/async"
	"github.com/dmitrymomot/authkit/pkg/password"
)

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := password.NewHasher(password.WithParams(fastParams), password.WithWorkers(2))
	defer h.Close()

	ctx := context.Background()
	pw := []byte("s3cret!")

	first, err := h.Hash(ctx, pw)
	require.NoError(t, err)
	second, err := h.Hash(ctx, pw)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	assert.NoError(t, h.Verify(ctx, first, pw))
	assert.NoError(t, h.Verify(ctx, second, pw))
	assert.ErrorIs(t, h.Verify(ctx, first, []byte("s3cret?")), password.ErrMismatch)
	assert.ErrorIs(t, h.Verify(ctx, "$argon2id$broken", pw), password.ErrMalformedHash)
	assert.False(t, h.NeedsRehash(first))
}

func TestHasher_CallerBufferReuse(t *testing.T) {
	t.Parallel()

	h := password.NewHasher(password.WithParams(fastParams), password.WithWorkers(1))
	defer h.Close()

	buf := []byte("original")
	encoded, err := h.Hash(context.Background(), buf)
	require.NoError(t, err)

	copy(buf, "scribble")
	assert.NoError(t, h.Verify(context.Background(), encoded, []byte("original")))
}

func TestHasher_CanceledContext(t *testing.T) {
	t.Parallel()

	h := password.NewHasher(password.WithParams(fastParams), password.WithWorkers(1))
	defer h.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Hash(ctx, []byte("pw"))
	assert.ErrorIs(t, err, context.Canceled)

	err = h.Verify(ctx, "$argon2id$v=19$m=64,t=1,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", []byte("pw"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHasher_SharedPool(t *testing.T) {
	t.Parallel()

	pool := async.NewPool(2)
	defer pool.Close()

	h := password.NewHasher(password.WithParams(fastParams), password.WithPool(pool))
	h.Close() // must not close the shared pool

	encoded, err := h.Hash(context.Background(), []byte("pw"))
	require.NoError(t, err)
	assert.NoError(t, h.Verify(context.Background(), encoded, []byte("pw")))
}

func TestHasher_Concurrent(t *testing.T) {
	t.Parallel()

	h := password.NewHasher(password.WithParams(fastParams), password.WithWorkers(2))
	defer h.Close()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pw := []byte{byte(i), 'p', 'w'}
			encoded, err := h.Hash(context.Background(), pw)
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, h.Verify(context.Background(), encoded, pw))
		}()
	}
	wg.Wait()
}

func TestConfig_Params(t *testing.T) {
	t.Parallel()

	assert.Equal(t, password.DefaultParams, password.Config{}.Params())

	p := password.Config{MemoryKiB: 65536, Iterations: 3, Parallelism: 4}.Params()
	assert.Equal(t, uint32(65536), p.Memory)
	assert.Equal(t, uint32(3), p.Iterations)
	assert.Equal(t, uint8(4), p.Parallelism)
	assert.Equal(t, password.DefaultParams.SaltLength, p.SaltLength)
	assert.Equal(t, password.DefaultParams.KeyLength, p.KeyLength)
}
