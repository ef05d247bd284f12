package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which handlers to mount in the account module.
// Each one is optional and only mounted if provided.
type RouterOptions struct {
	Users  Mountable // mounted at /users
	Health Mountable // mounted at /health
}

// Router creates the account module router.
//
// Example:
//
//	users := account.NewUsersHandler(cfg, svc, sessions, account.WithLogger(log))
//	health := account.NewHealthHandler(map[string]account.Check{
//	    "redis":    redis.Healthcheck(rdb),
//	    "postgres": pg.Healthcheck(pool),
//	})
//
//	r := chi.NewRouter()
//	r.Mount("/", account.Router(account.RouterOptions{Users: users, Health: health}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Users != nil {
		r.Mount("/users", opts.Users.Handle())
	}
	if opts.Health != nil {
		r.Mount("/health", opts.Health.Handle())
	}

	return r
}
