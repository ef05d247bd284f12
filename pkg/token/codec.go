package token

import (
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"golang.org/x/crypto/blake2b"
)

// KeySize is the required length of the symmetric secret key.
const KeySize = 32

// Codec seals Claims into PASETO v4.local tokens and opens them again.
// A Codec is immutable and safe for concurrent use.
type Codec struct {
	key      paseto.V4SymmetricKey
	implicit []byte
	footer   []byte
	kid      string
	now      func() time.Time
}

type Option func(*Codec)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec builds a codec from a 32-byte secret key and a non-empty associated
// secret. Errors wrap ErrInvalidKey and indicate a configuration problem.
func NewCodec(secretKey, associatedSecret []byte, opts ...Option) (*Codec, error) {
	if len(secretKey) != KeySize {
		return nil, fmt.Errorf("%w: secret key must be %d bytes, got %d", ErrInvalidKey, KeySize, len(secretKey))
	}
	if len(associatedSecret) == 0 {
		return nil, fmt.Errorf("%w: associated secret is empty", ErrInvalidKey)
	}

	key, err := paseto.V4SymmetricKeyFromBytes(secretKey)
	if err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}

	kid := keyID(secretKey)
	footer, err := json.Marshal(struct {
		KeyID string `json:"kid"`
	}{kid})
	if err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}

	c := &Codec{
		key:      key,
		implicit: append([]byte(nil), associatedSecret...),
		footer:   footer,
		kid:      kid,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// KeyID returns the fingerprint of the secret key carried in every footer.
func (c *Codec) KeyID() string {
	return c.kid
}

// Encrypt seals claims into an opaque token string.
func (c *Codec) Encrypt(claims Claims) (string, error) {
	if err := claims.validate(); err != nil {
		return "", err
	}

	tok := paseto.NewToken()
	tok.SetString(claimUserID, claims.UserID.String())
	tok.SetString(claimSessionKey, claims.SessionKey)
	tok.SetExpiration(claims.Expiration)
	tok.SetFooter(c.footer)

	return tok.V4Encrypt(c.key, c.implicit), nil
}

// Decrypt authenticates and opens tok, then validates its claims and expiry.
// Every error matches ErrInvalidToken; expired-but-authentic tokens also match
// ErrTokenExpired.
func (c *Codec) Decrypt(tok string) (Claims, error) {
	parser := paseto.NewParserWithoutExpiryCheck()

	parsed, err := parser.ParseV4Local(c.key, tok, c.implicit)
	if err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}

	if subtle.ConstantTimeCompare(parsed.Footer(), c.footer) != 1 {
		return Claims{}, fmt.Errorf("%w: unexpected footer", ErrInvalidToken)
	}

	claims, err := decodeClaims(parsed.ClaimsJSON())
	if err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}

	if !c.now().Before(claims.Expiration) {
		return Claims{}, ErrTokenExpired
	}

	return claims, nil
}

// keyID is a short BLAKE2b fingerprint of the secret key.
func keyID(secretKey []byte) string {
	sum := blake2b.Sum256(secretKey)
	return hex.EncodeToString(sum[:8])
}
