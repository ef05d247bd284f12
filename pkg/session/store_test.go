package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/session"
)

func TestRedisStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store := session.NewRedisStore(client, "app", session.WithStoreClock(func() time.Time { return now }))

	sess := &session.Session{
		Token:     "tok",
		UserID:    uuid.New(),
		UserEmail: "jane@example.com",
		CreatedAt: now,
		ExpiresAt: now.Add(30 * time.Minute),
	}
	require.NoError(t, store.Create(ctx, sess))

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, 30*time.Minute, mr.TTL(keys[0]))

	raw, err := mr.Get(keys[0])
	require.NoError(t, err)
	assert.NotContains(t, raw, `"tok"`)

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, "tok", got.Token)
	assert.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))

	_, err = store.Get(ctx, "other")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "tok"))
	assert.ErrorIs(t, store.Delete(ctx, "tok"), session.ErrSessionNotFound)

	expired := &session.Session{Token: "old", UserID: uuid.New(), ExpiresAt: now}
	assert.Error(t, store.Create(ctx, expired))
	assert.Empty(t, mr.Keys())
}
