package session

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/authkit/pkg/cookie"
)

// Transport moves the session token between client and server.
type Transport interface {
	GetToken(r *http.Request) (string, error)
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error
	ClearToken(w http.ResponseWriter)
}

// CookieTransport keeps the token in an encrypted, HttpOnly cookie.
type CookieTransport struct {
	cookies *cookie.Manager
	name    string
}

var _ Transport = (*CookieTransport)(nil)

func NewCookieTransport(cookies *cookie.Manager, name string) *CookieTransport {
	return &CookieTransport{cookies: cookies, name: name}
}

// GetToken returns ErrSessionNotFound for a missing or unreadable cookie.
func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookies.GetEncrypted(r, t.name)
	if err != nil || token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	return t.cookies.SetEncrypted(w, t.name, token,
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithHTTPOnly(true),
	)
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) {
	t.cookies.Delete(w, t.name)
}
