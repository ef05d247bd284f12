package account

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/authkit/pkg/email"
	"github.com/dmitrymomot/authkit/pkg/email/templates"
)

// Notifier delivers account links to users.
type Notifier interface {
	SendConfirmation(ctx context.Context, user *User, token string, ttl time.Duration) error
	SendPasswordChange(ctx context.Context, user *User, token string, ttl time.Duration) error
}

// NotifierConfig holds the public URLs embedded in account emails.
type NotifierConfig struct {
	BaseURL            string `env:"BASE_URL,required"`                                       // Public API root, e.g. https://api.example.com
	ConfirmPath        string `env:"CONFIRM_PATH" envDefault:"/users/register/confirm"`       // Handled by this service.
	PasswordChangePath string `env:"PASSWORD_CHANGE_PATH" envDefault:"/auth/password/change"` // Frontend page that posts the new password.
	FrontendURL        string `env:"FRONTEND_URL"`                                            // Root for PasswordChangePath; BaseURL if empty.
}

// EmailNotifier renders the account templates and sends them through an
// email.EmailSender.
type EmailNotifier struct {
	sender email.EmailSender
	cfg    NotifierConfig
}

var _ Notifier = (*EmailNotifier)(nil)

func NewEmailNotifier(sender email.EmailSender, cfg NotifierConfig) *EmailNotifier {
	if cfg.ConfirmPath == "" {
		cfg.ConfirmPath = "/users/register/confirm"
	}
	if cfg.PasswordChangePath == "" {
		cfg.PasswordChangePath = "/auth/password/change"
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = cfg.BaseURL
	}
	return &EmailNotifier{sender: sender, cfg: cfg}
}

func (n *EmailNotifier) SendConfirmation(ctx context.Context, user *User, token string, ttl time.Duration) error {
	return n.send(ctx, user, "Confirm your email address", "confirm_registration",
		templates.ConfirmRegistration, link(n.cfg.BaseURL, n.cfg.ConfirmPath, token), ttl)
}

func (n *EmailNotifier) SendPasswordChange(ctx context.Context, user *User, token string, ttl time.Duration) error {
	return n.send(ctx, user, "Change your password", "password_change",
		templates.PasswordChange, link(n.cfg.FrontendURL, n.cfg.PasswordChangePath, token), ttl)
}

func (n *EmailNotifier) send(ctx context.Context, user *User, subject, tag string, page func(templates.LinkData) templ.Component, href string, ttl time.Duration) error {
	body, err := templates.Render(ctx, page(templates.LinkData{
		Name:      user.DisplayName(),
		Link:      href,
		ExpiresIn: humanize(ttl),
	}))
	if err != nil {
		return fmt.Errorf("render %s email: %w", tag, err)
	}

	return n.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   user.Email,
		Subject:  subject,
		BodyHTML: body,
		Tag:      tag,
	})
}

func link(base, path, token string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/") +
		"?" + url.Values{"token": {token}}.Encode()
}

// humanize formats whole minutes or hours: "15 minutes", "1 hour".
func humanize(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute:
		return plural(int(d/time.Minute), "minute")
	}
	return plural(int(d/time.Second), "second")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
