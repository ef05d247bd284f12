package main

import (
	"github.com/dmitrymomot/authkit/modules/account"
	"github.com/dmitrymomot/authkit/pkg/confirmation"
	"github.com/dmitrymomot/authkit/pkg/cookie"
	"github.com/dmitrymomot/authkit/pkg/email"
	"github.com/dmitrymomot/authkit/pkg/httpserver"
	"github.com/dmitrymomot/authkit/pkg/password"
	"github.com/dmitrymomot/authkit/pkg/pg"
	"github.com/dmitrymomot/authkit/pkg/redis"
	"github.com/dmitrymomot/authkit/pkg/session"
	accountsvc "github.com/dmitrymomot/authkit/svc/account"
)

// appConfig is read from APP_-prefixed environment variables and .env.
type appConfig struct {
	Env         string `env:"ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"authkit"`

	HTTP     httpserver.Config
	Redis    redis.Config
	Postgres pg.Config
	Token    confirmation.Config
	Password password.Config
	Email    email.Config
	Cookie   cookie.Config
	Session  session.Config
	Links    accountsvc.NotifierConfig
	Frontend account.Config
}
