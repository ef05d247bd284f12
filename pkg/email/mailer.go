package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo   string `json:"send_to" validate:"required,email"` // Email address of the recipient
	Subject  string `json:"subject" validate:"required"`
	BodyHTML string `json:"body_html" validate:"required"`
	Tag      string `json:"tag,omitempty"` // Optional
}

// Validate checks required fields and the recipient address.
// Whitespace-only values count as empty.
func (p SendEmailParams) Validate() error {
	p.SendTo = strings.TrimSpace(p.SendTo)
	p.Subject = strings.TrimSpace(p.Subject)
	p.BodyHTML = strings.TrimSpace(p.BodyHTML)

	if err := validate.Struct(p); err != nil {
		return validationError(ErrInvalidParams, err)
	}
	return nil
}

// validationError reports the first failed field as "<Field> is required" or
// "<Field> must be a valid email address".
func validationError(sentinel, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Join(sentinel, err)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", sentinel, fe.Field())
	case "email":
		return fmt.Errorf("%w: %s must be a valid email address", sentinel, fe.Field())
	}
	return fmt.Errorf("%w: %s failed %q", sentinel, fe.Field(), fe.Tag())
}
