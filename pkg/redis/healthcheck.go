package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// sentinelKey is never written; GETDEL on it only proves the command exists.
const sentinelKey = "authkit:healthcheck:sentinel"

// Healthcheck returns a check that pings the server and checks that GETDEL
// (Redis 6.2+) is available, since token redemption depends on it.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if err := client.GetDel(ctx, sentinelKey).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return errors.Join(ErrHealthcheckFailed, ErrGetDelUnsupported, err)
		}
		return nil
	}
}
