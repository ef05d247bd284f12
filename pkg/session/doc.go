// Package session keeps login sessions for the account API.
//
// A Manager ties a Store (where sessions live) to a Transport (how the
// session token travels). The production pairing is RedisStore with a
// CookieTransport: the token is a 256-bit random value sealed into an
// HttpOnly cookie by pkg/cookie, and Redis holds the session as JSON under a
// BLAKE2b digest of the token, expiring together with the session.
//
// Logging in always starts a new session and revokes any session the request
// already carried. Logging out deletes the session from the store and clears
// the cookie.
//
// # Usage
//
//	cookies, _ := cookie.NewFromConfig(cookieCfg)
//	sessions := session.NewFromConfig(cfg,
//	    session.NewRedisStore(rdb, cfg.KeyPrefix),
//	    session.NewCookieTransport(cookies, cfg.CookieName),
//	    session.WithLogger(log),
//	)
//
//	sess, err := sessions.Authenticate(ctx, w, r, user.ID, user.Email)
//	sess, err = sessions.Get(ctx, r)
//	sess, err = sessions.Destroy(ctx, w, r)
//
// # Errors
//
// ErrSessionNotFound covers missing, unreadable, unknown and expired sessions
// alike. Store failures are wrapped with ErrStoreUnavailable.
package session
