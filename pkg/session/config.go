package session

import "time"

// Config holds session configuration.
type Config struct {
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	KeyPrefix  string        `env:"SESSION_KEY_PREFIX" envDefault:"authkit"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName: "sid",
		TTL:        24 * time.Hour,
		KeyPrefix:  "authkit",
	}
}
