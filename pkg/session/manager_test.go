package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/cookie"
	"github.com/dmitrymomot/authkit/pkg/session"
)

const secret = "this-is-a-very-long-secret-key-32-chars-long"

type fixture struct {
	manager *session.Manager
	mr      *miniredis.Miniredis
}

func newFixture(t *testing.T, opts ...session.Option) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cookies, err := cookie.New([]string{secret})
	require.NoError(t, err)

	cfg := session.DefaultConfig()
	m := session.NewFromConfig(cfg,
		session.NewRedisStore(client, cfg.KeyPrefix),
		session.NewCookieTransport(cookies, cfg.CookieName),
		opts...,
	)
	return &fixture{manager: m, mr: mr}
}

// next builds a request carrying the cookies set on w.
func next(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge >= 0 {
			r.AddCookie(c)
		}
	}
	return r
}

func TestManager_Authenticate(t *testing.T) {
	t.Parallel()
	f := newFixture(t, session.WithTTL(time.Hour))
	ctx := context.Background()
	userID := uuid.New()

	w := httptest.NewRecorder()
	sess, err := f.manager.Authenticate(ctx, w, httptest.NewRequest(http.MethodPost, "/", nil), userID, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, sess.UserID)
	assert.Equal(t, "jane@example.com", sess.UserEmail)

	c := w.Result().Cookies()
	require.Len(t, c, 1)
	assert.Equal(t, "sid", c[0].Name)
	assert.Equal(t, 3600, c[0].MaxAge)
	assert.True(t, c[0].HttpOnly)
	assert.NotContains(t, c[0].Value, sess.Token)

	keys := f.mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "authkit:session:"))
	assert.NotContains(t, keys[0], sess.Token)
	assert.Equal(t, time.Hour, f.mr.TTL(keys[0]).Round(time.Second))

	got, err := f.manager.Get(ctx, next(w))
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, "jane@example.com", got.UserEmail)
}

func TestManager_AuthenticateRenewsSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	first := httptest.NewRecorder()
	_, err := f.manager.Authenticate(ctx, first, httptest.NewRequest(http.MethodPost, "/", nil), uuid.New(), "a@example.com")
	require.NoError(t, err)

	second := httptest.NewRecorder()
	_, err = f.manager.Authenticate(ctx, second, next(first), uuid.New(), "b@example.com")
	require.NoError(t, err)

	assert.Len(t, f.mr.Keys(), 1)

	_, err = f.manager.Get(ctx, next(first))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	got, err := f.manager.Get(ctx, next(second))
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", got.UserEmail)
}

func TestManager_Destroy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("logged in", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		userID := uuid.New()

		login := httptest.NewRecorder()
		_, err := f.manager.Authenticate(ctx, login, httptest.NewRequest(http.MethodPost, "/", nil), userID, "jane@example.com")
		require.NoError(t, err)

		logout := httptest.NewRecorder()
		sess, err := f.manager.Destroy(ctx, logout, next(login))
		require.NoError(t, err)
		assert.Equal(t, userID, sess.UserID)
		assert.Empty(t, f.mr.Keys())
		assert.Contains(t, logout.Header().Get("Set-Cookie"), "Max-Age=0")

		_, err = f.manager.Destroy(ctx, httptest.NewRecorder(), next(login))
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("no cookie", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		w := httptest.NewRecorder()
		_, err := f.manager.Destroy(ctx, w, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
		assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
	})

	t.Run("forged cookie", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.AddCookie(&http.Cookie{Name: "sid", Value: "plain-token"})
		_, err := f.manager.Destroy(ctx, httptest.NewRecorder(), r)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})
}

func TestManager_Expiry(t *testing.T) {
	t.Parallel()
	f := newFixture(t, session.WithTTL(time.Minute))
	ctx := context.Background()

	w := httptest.NewRecorder()
	_, err := f.manager.Authenticate(ctx, w, httptest.NewRequest(http.MethodPost, "/", nil), uuid.New(), "jane@example.com")
	require.NoError(t, err)

	f.mr.FastForward(time.Minute)

	_, err = f.manager.Get(ctx, next(w))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_ExpiredPayload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Now()
	clock := func() time.Time { return now }

	f := newFixture(t, session.WithTTL(time.Minute), session.WithClock(clock))

	w := httptest.NewRecorder()
	_, err := f.manager.Authenticate(ctx, w, httptest.NewRequest(http.MethodPost, "/", nil), uuid.New(), "jane@example.com")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = f.manager.Get(ctx, next(w))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_StoreUnavailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	w := httptest.NewRecorder()
	_, err := f.manager.Authenticate(ctx, w, httptest.NewRequest(http.MethodPost, "/", nil), uuid.New(), "jane@example.com")
	require.NoError(t, err)

	f.mr.Close()

	_, err = f.manager.Get(ctx, next(w))
	assert.ErrorIs(t, err, session.ErrStoreUnavailable)

	_, err = f.manager.Authenticate(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil), uuid.New(), "x@example.com")
	assert.ErrorIs(t, err, session.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, session.ErrSessionNotFound)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestManager_TokenGeneration(t *testing.T) {
	t.Parallel()
	f := newFixture(t, session.WithRandom(failingReader{}))

	w := httptest.NewRecorder()
	_, err := f.manager.Authenticate(context.Background(), w, httptest.NewRequest(http.MethodPost, "/", nil), uuid.New(), "jane@example.com")
	assert.ErrorIs(t, err, session.ErrTokenGeneration)
	assert.Empty(t, w.Header().Get("Set-Cookie"))
	assert.Empty(t, f.mr.Keys())
}
