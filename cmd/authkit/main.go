// Command authkit serves the account API: registration with email
// confirmation, session login and logout, and password change.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authkit/modules/account"
	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/confirmation"
	"github.com/dmitrymomot/authkit/pkg/cookie"
	"github.com/dmitrymomot/authkit/pkg/email"
	"github.com/dmitrymomot/authkit/pkg/httpserver"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/password"
	"github.com/dmitrymomot/authkit/pkg/pg"
	"github.com/dmitrymomot/authkit/pkg/redis"
	"github.com/dmitrymomot/authkit/pkg/session"
	accountsvc "github.com/dmitrymomot/authkit/svc/account"
)

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("authkit stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	store := redis.NewStorage(rdb)
	defer store.Close()

	pool, err := pg.Connect(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	cfg.Postgres.MigrationsPath = accountsvc.MigrationsDir
	if err := pg.Migrate(ctx, pool, cfg.Postgres, log, pg.WithMigrationsFS(accountsvc.Migrations)); err != nil {
		return err
	}

	tokens, err := confirmation.NewServiceFromConfig(cfg.Token, store, confirmation.WithLogger(log))
	if err != nil {
		return err
	}

	hasher := password.NewHasherFromConfig(cfg.Password, password.WithLogger(log))
	defer hasher.Close()

	sender, err := email.NewSenderFromConfig(cfg.Email)
	if err != nil {
		return err
	}
	if !cfg.Email.UsesPostmark() {
		log.Warn("postmark not configured, writing emails to disk",
			slog.String("dir", cfg.Email.DevDir),
			logger.Component("email"),
		)
	}

	svc := accountsvc.NewService(
		accountsvc.NewPGStorage(pool),
		hasher,
		tokens,
		accountsvc.NewEmailNotifier(sender, cfg.Links),
		accountsvc.WithLogger(log),
	)

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}
	sessions := session.NewFromConfig(cfg.Session,
		session.NewRedisStore(rdb, cfg.Session.KeyPrefix),
		session.NewCookieTransport(cookies, cfg.Session.CookieName),
		session.WithLogger(log),
	)

	users := account.NewUsersHandler(cfg.Frontend, svc, sessions, account.WithLogger(log))
	health := account.NewHealthHandler(map[string]account.Check{
		"redis":    redis.Healthcheck(rdb),
		"postgres": pg.Healthcheck(pool),
	}, account.WithHealthLogger(log))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Mount("/", account.Router(account.RouterOptions{Users: users, Health: health}))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}
