package confirmation

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/authkit/pkg/token"
)

// Config is read once at startup and handed to NewServiceFromConfig.
type Config struct {
	SecretKey         string `env:"TOKEN_SECRET_KEY,required"`                  // Hex encoded, 32 bytes.
	HMACSecret        string `env:"TOKEN_HMAC_SECRET,required"`                 // Authenticated, never encrypted or sent.
	ExpirationMinutes int    `env:"TOKEN_EXPIRATION_MINUTES" envDefault:"15"` // Confirmation window.
	KeyPrefix         string `env:"TOKEN_KEY_PREFIX" envDefault:"authkit"`
}

// Lifetime is the confirmation-purpose validity window.
func (c Config) Lifetime() time.Duration {
	return time.Duration(c.ExpirationMinutes) * time.Minute
}

// Validate checks the key material and window, returning ErrInvalidConfig.
func (c Config) Validate() error {
	if _, err := c.secretKey(); err != nil {
		return err
	}
	if c.HMACSecret == "" {
		return fmt.Errorf("%w: empty hmac secret", ErrInvalidConfig)
	}
	if c.ExpirationMinutes <= 0 {
		return fmt.Errorf("%w: expiration must be positive, got %d minutes", ErrInvalidConfig, c.ExpirationMinutes)
	}
	if strings.Contains(c.KeyPrefix, ":") {
		return fmt.Errorf("%w: key prefix must not contain ':'", ErrInvalidConfig)
	}
	return nil
}

func (c Config) secretKey() ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(c.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("%w: secret key is not hex: %v", ErrInvalidConfig, err)
	}
	if len(key) != token.KeySize {
		return nil, fmt.Errorf("%w: secret key must be %d bytes, got %d", ErrInvalidConfig, token.KeySize, len(key))
	}
	return key, nil
}
