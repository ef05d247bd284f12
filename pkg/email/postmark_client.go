package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

type postmarkClient struct {
	client *postmark.Client
	config Config
}

// postmarkSettings is the part of Config a Postmark sender needs.
type postmarkSettings struct {
	PostmarkServerToken string `validate:"required"`
	SenderEmail         string `validate:"required,email"`
	SupportEmail        string `validate:"required,email"`
}

// NewPostmarkClient creates a Postmark-backed email sender. The server token
// and both addresses are required; the account token is optional since
// sending only needs the server token.
func NewPostmarkClient(cfg Config) (EmailSender, error) {
	if err := validate.Struct(postmarkSettings{
		PostmarkServerToken: cfg.PostmarkServerToken,
		SenderEmail:         cfg.SenderEmail,
		SupportEmail:        cfg.SupportEmail,
	}); err != nil {
		return nil, validationError(ErrInvalidConfig, err)
	}

	return &postmarkClient{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

// MustNewPostmarkClient creates a Postmark client that panics on invalid config.
func MustNewPostmarkClient(cfg Config) EmailSender {
	client, err := NewPostmarkClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail implements EmailSender using Postmark's transactional API.
// Tracking is off so token links reach the user unmodified.
// Replies go to the support address.
func (c *postmarkClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:       c.config.SenderEmail,
		ReplyTo:    c.config.SupportEmail,
		To:         params.SendTo,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		TrackOpens: false,
		TrackLinks: "None",
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
