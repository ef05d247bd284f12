package token

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	claimUserID     = "user_id"
	claimSessionKey = "session_key"
)

// Claims is the payload sealed inside a token.
// Expiration has second precision on the wire.
type Claims struct {
	UserID     uuid.UUID
	SessionKey string
	Expiration time.Time
}

func (c Claims) validate() error {
	switch {
	case c.UserID == uuid.Nil:
		return fmt.Errorf("%w: empty user id", ErrInvalidClaims)
	case c.SessionKey == "":
		return fmt.Errorf("%w: empty session key", ErrInvalidClaims)
	case c.Expiration.IsZero():
		return fmt.Errorf("%w: missing expiration", ErrInvalidClaims)
	}
	return nil
}

// wireClaims mirrors the JSON claim set exactly; anything else is rejected.
type wireClaims struct {
	UserID     string `json:"user_id"`
	SessionKey string `json:"session_key"`
	Expiration string `json:"exp"`
}

func decodeClaims(raw []byte) (Claims, error) {
	var w wireClaims

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return Claims{}, errors.Join(ErrInvalidClaims, err)
	}

	if w.UserID == "" || w.SessionKey == "" || w.Expiration == "" {
		return Claims{}, fmt.Errorf("%w: missing required claim", ErrInvalidClaims)
	}

	userID, err := uuid.Parse(w.UserID)
	if err != nil {
		return Claims{}, errors.Join(ErrInvalidClaims, err)
	}

	exp, err := time.Parse(time.RFC3339, w.Expiration)
	if err != nil {
		return Claims{}, errors.Join(ErrInvalidClaims, err)
	}

	c := Claims{UserID: userID, SessionKey: w.SessionKey, Expiration: exp}
	if err := c.validate(); err != nil {
		return Claims{}, err
	}
	return c, nil
}
