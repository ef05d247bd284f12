package cookie

import (
	"fmt"
	"net/http"
	"strings"
)

// Config holds cookie manager configuration. Secrets are comma separated,
// newest first. SameSite is lax, strict or none.
type Config struct {
	Secrets  []string `env:"COOKIE_SECRETS,required" envSeparator:","`
	Domain   string   `env:"COOKIE_DOMAIN"`
	Secure   bool     `env:"COOKIE_SECURE" envDefault:"true"`
	SameSite string   `env:"COOKIE_SAME_SITE" envDefault:"lax"`
}

func parseSameSite(s string) (http.SameSite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSameSite, s)
}

// NewFromConfig creates a new Manager from the provided Config.
// SameSite=None requires Secure, as browsers drop such cookies otherwise.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	sameSite, err := parseSameSite(cfg.SameSite)
	if err != nil {
		return nil, err
	}
	if sameSite == http.SameSiteNoneMode && !cfg.Secure {
		return nil, fmt.Errorf("%w: SameSite=None needs COOKIE_SECURE", ErrInvalidSameSite)
	}

	secrets := make([]string, 0, len(cfg.Secrets))
	for _, s := range cfg.Secrets {
		secrets = append(secrets, strings.TrimSpace(s))
	}

	configOpts := []Option{WithSecure(cfg.Secure), WithSameSite(sameSite)}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}

	return New(secrets, append(configOpts, opts...)...)
}
