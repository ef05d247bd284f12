package account

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/authkit/handler"
	"github.com/dmitrymomot/authkit/pkg/confirmation"
	"github.com/dmitrymomot/authkit/pkg/session"
	accountsvc "github.com/dmitrymomot/authkit/svc/account"
)

var (
	ErrEmailTaken         = handler.NewHTTPError(http.StatusConflict, "email_already_exists")
	ErrBadCredentials     = handler.NewHTTPError(http.StatusUnauthorized, "invalid_credentials")
	ErrInvalidToken       = handler.NewHTTPError(http.StatusBadRequest, "invalid_token")
	ErrTokenUsedOrExpired = handler.NewHTTPError(http.StatusGone, "token_used_or_expired")
	ErrNotAuthenticated   = handler.NewHTTPError(http.StatusUnauthorized, "not_authenticated")
)

// httpError maps service failures onto HTTP errors. The original error stays
// in the chain for logging.
func httpError(err error) error {
	var inErr *accountsvc.InputError
	if errors.As(err, &inErr) {
		verr := handler.NewValidationError()
		for field, msg := range inErr.Fields {
			verr.Add(field, msg)
		}
		return verr
	}

	var mapped handler.HTTPError
	switch {
	case errors.Is(err, accountsvc.ErrInvalidInput):
		mapped = handler.ErrUnprocessableEntity
	case errors.Is(err, accountsvc.ErrEmailAlreadyExists):
		mapped = ErrEmailTaken
	case errors.Is(err, accountsvc.ErrInvalidCredentials):
		mapped = ErrBadCredentials
	case errors.Is(err, confirmation.ErrInvalidToken):
		mapped = ErrInvalidToken
	case errors.Is(err, confirmation.ErrAlreadyUsedOrExpired):
		mapped = ErrTokenUsedOrExpired
	case errors.Is(err, accountsvc.ErrUserNotFound):
		mapped = handler.ErrNotFound
	case errors.Is(err, session.ErrSessionNotFound):
		mapped = ErrNotAuthenticated
	case errors.Is(err, accountsvc.ErrConfirmationUnavailable),
		errors.Is(err, confirmation.ErrStoreUnavailable),
		errors.Is(err, session.ErrStoreUnavailable):
		mapped = handler.ErrServiceUnavailable
	default:
		return err
	}
	return errors.Join(mapped, err)
}
