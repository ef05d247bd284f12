package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/binder"
	"github.com/dmitrymomot/authkit/handler"
	"github.com/dmitrymomot/authkit/pkg/confirmation"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/session"
	accountsvc "github.com/dmitrymomot/authkit/svc/account"
)

// AccountService is satisfied by *accountsvc.Service.
type AccountService interface {
	Register(ctx context.Context, in accountsvc.RegisterInput) (*accountsvc.User, error)
	ConfirmRegistration(ctx context.Context, token string) (*accountsvc.User, error)
	ResendConfirmation(ctx context.Context, email string) error
	Login(ctx context.Context, in accountsvc.LoginInput) (*accountsvc.User, error)
	RequestPasswordChange(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, in accountsvc.ChangePasswordInput) error
}

// SessionManager is satisfied by *session.Manager.
type SessionManager interface {
	Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID uuid.UUID, email string) (*session.Session, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) (*session.Session, error)
}

type emailRequest struct {
	Email string `json:"email"`
}

type confirmRequest struct {
	Token string `query:"token"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// UsersHandler serves registration, login, logout and password change under
// /users.
type UsersHandler struct {
	cfg          Config
	svc          AccountService
	sessions     SessionManager
	logger       *slog.Logger
	errorHandler handler.ErrorHandler
}

type Option func(*UsersHandler)

// WithLogger sets a custom logger; it also backs the default error handler.
func WithLogger(l *slog.Logger) Option {
	return func(h *UsersHandler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithErrorHandler replaces the JSON error handler.
func WithErrorHandler(eh handler.ErrorHandler) Option {
	return func(h *UsersHandler) {
		h.errorHandler = eh
	}
}

func NewUsersHandler(cfg Config, svc AccountService, sessions SessionManager, opts ...Option) *UsersHandler {
	h := &UsersHandler{
		cfg:      cfg.withDefaults(),
		svc:      svc,
		sessions: sessions,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.errorHandler == nil {
		h.errorHandler = handler.NewErrorHandler(h.logger)
	}
	return h
}

func (h *UsersHandler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/register", handler.Wrap[accountsvc.RegisterInput](h.register,
		handler.WithBinders[accountsvc.RegisterInput](binder.BindJSON()),
		handler.WithErrorHandler[accountsvc.RegisterInput](h.errorHandler),
	))
	r.Get("/register/confirm", handler.Wrap[confirmRequest](h.confirm,
		handler.WithBinders[confirmRequest](binder.BindQuery()),
		handler.WithErrorHandler[confirmRequest](h.errorHandler),
	))
	r.Post("/register/resend", handler.Wrap[emailRequest](h.resend,
		handler.WithBinders[emailRequest](binder.BindJSON()),
		handler.WithErrorHandler[emailRequest](h.errorHandler),
	))
	r.Post("/login", handler.Wrap[accountsvc.LoginInput](h.login,
		handler.WithBinders[accountsvc.LoginInput](binder.BindJSON()),
		handler.WithErrorHandler[accountsvc.LoginInput](h.errorHandler),
	))
	r.Post("/logout", handler.Wrap[struct{}](h.logout,
		handler.WithErrorHandler[struct{}](h.errorHandler),
	))
	r.Post("/password/change/request", handler.Wrap[emailRequest](h.requestPasswordChange,
		handler.WithBinders[emailRequest](binder.BindJSON()),
		handler.WithErrorHandler[emailRequest](h.errorHandler),
	))
	r.Post("/password/change", handler.Wrap[accountsvc.ChangePasswordInput](h.changePassword,
		handler.WithBinders[accountsvc.ChangePasswordInput](binder.BindJSON()),
		handler.WithErrorHandler[accountsvc.ChangePasswordInput](h.errorHandler),
	))

	return r
}

func (h *UsersHandler) register(ctx handler.Context, req accountsvc.RegisterInput) handler.Response {
	user, err := h.svc.Register(ctx, req)
	switch {
	case err == nil:
		return handler.JSON(user, handler.WithJSONStatus(http.StatusCreated))
	case user != nil && errors.Is(err, accountsvc.ErrConfirmationUnavailable):
		// The account exists; the client can ask for the link again.
		return handler.JSON(user,
			handler.WithJSONStatus(http.StatusCreated),
			handler.WithJSONMeta(map[string]any{"confirmation_sent": false}),
		)
	}
	return h.fail(ctx, err)
}

// confirm always redirects to the frontend. Spent links and links burned by a
// failed activation go to regenerate-token, a store outage goes to the
// unavailable page where the same link can be retried.
func (h *UsersHandler) confirm(ctx handler.Context, req confirmRequest) handler.Response {
	if req.Token == "" {
		return handler.Redirect(h.frontend(h.cfg.ErrorPath))
	}

	_, err := h.svc.ConfirmRegistration(ctx, req.Token)
	switch {
	case err == nil:
		return handler.Redirect(h.frontend(h.cfg.ConfirmedPath))
	case errors.Is(err, confirmation.ErrAlreadyUsedOrExpired):
		return handler.Redirect(h.frontend(h.cfg.RegenerateTokenPath))
	case errors.Is(err, accountsvc.ErrActivationFailed):
		return handler.Redirect(h.frontend(h.cfg.RegenerateTokenPath))
	case errors.Is(err, confirmation.ErrStoreUnavailable):
		h.logger.ErrorContext(ctx, "email confirmation unavailable",
			logger.Error(err),
			logger.Component("account"),
		)
		return handler.Redirect(h.frontend(h.cfg.UnavailablePath))
	}

	level := slog.LevelWarn
	if !errors.Is(err, confirmation.ErrInvalidToken) {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, "email confirmation failed",
		logger.Error(err),
		logger.Component("account"),
	)
	return handler.Redirect(h.frontend(h.cfg.ErrorPath))
}

func (h *UsersHandler) resend(ctx handler.Context, req emailRequest) handler.Response {
	if err := h.svc.ResendConfirmation(ctx, req.Email); err != nil {
		return h.fail(ctx, err)
	}
	return accepted()
}

// login answers with the user and sets the session cookie.
func (h *UsersHandler) login(ctx handler.Context, req accountsvc.LoginInput) handler.Response {
	user, err := h.svc.Login(ctx, req)
	if err != nil {
		return h.fail(ctx, err)
	}
	if _, err := h.sessions.Authenticate(ctx, ctx.ResponseWriter(), ctx.Request(), user.ID, user.Email); err != nil {
		return h.fail(ctx, err)
	}
	return handler.JSON(user)
}

func (h *UsersHandler) logout(ctx handler.Context, _ struct{}) handler.Response {
	sess, err := h.sessions.Destroy(ctx, ctx.ResponseWriter(), ctx.Request())
	if err != nil {
		return h.fail(ctx, err)
	}
	h.logger.InfoContext(ctx, "user logged out",
		logger.UserID(sess.UserID),
		logger.Component("account"),
	)
	return handler.JSON(statusResponse{Status: "logged_out"})
}

func (h *UsersHandler) requestPasswordChange(ctx handler.Context, req emailRequest) handler.Response {
	if err := h.svc.RequestPasswordChange(ctx, req.Email); err != nil {
		return h.fail(ctx, err)
	}
	return accepted()
}

func (h *UsersHandler) changePassword(ctx handler.Context, req accountsvc.ChangePasswordInput) handler.Response {
	if err := h.svc.ChangePassword(ctx, req); err != nil {
		return h.fail(ctx, err)
	}
	return handler.JSON(statusResponse{Status: "password_changed"})
}

// fail hands err to the error handler, which logs it and writes the JSON error.
func (h *UsersHandler) fail(ctx handler.Context, err error) handler.Response {
	return handler.ResponseFunc(func(http.ResponseWriter, *http.Request) error {
		h.errorHandler(ctx, httpError(err))
		return nil
	})
}

func (h *UsersHandler) frontend(path string) string {
	return strings.TrimRight(h.cfg.FrontendURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// accepted does not tell whether an email was actually sent.
func accepted() handler.Response {
	return handler.JSON(statusResponse{Status: "accepted"}, handler.WithJSONStatus(http.StatusAccepted))
}
