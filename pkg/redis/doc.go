// Package redis connects to Redis and exposes the small key-value surface the
// confirmation flow needs.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the initial ping using the supplied configuration.
//   - Storage, a liveness ledger: Put writes a key with a mandatory expiry in
//     one command, Consume removes it with GETDEL so only one caller can ever
//     observe it.
//   - Healthcheck, for liveness and readiness checks.
//
// Configuration is described by Config, populated from environment variables
// via github.com/caarlos0/env.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error, probably terminate the application
//	}
//	defer client.Close()
//
//	store := redis.NewStorage(client)
//	if err := store.Put(ctx, "authkit:confirmation:abc", 15*time.Minute); err != nil {
//	    return err
//	}
//
//	ok, err := store.Consume(ctx, "authkit:confirmation:abc")
//	// ok is true exactly once
//
// # Errors
//
// Sentinel errors (ErrRedisNotReady, ErrHealthcheckFailed, ...) wrap the
// underlying go-redis errors using errors.Join.
package redis
