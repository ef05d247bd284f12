// Package email sends transactional emails through a provider-agnostic
// EmailSender interface.
//
// Implementations:
//   - PostmarkClient (NewPostmarkClient) for production delivery.
//   - DevSender for local development; it saves every message as an HTML file
//     plus a JSON metadata file instead of sending it.
//
// NewSenderFromConfig picks one of them from Config. All implementations
// validate SendEmailParams before doing anything.
//
// # Usage
//
//	sender, err := email.NewSenderFromConfig(cfg)
//	if err != nil {
//	    // Handle configuration error
//	}
//
//	body, err := templates.Render(ctx, templates.ConfirmRegistration(templates.LinkData{
//	    Name:      user.FirstName,
//	    Link:      link,
//	    ExpiresIn: "15 minutes",
//	}))
//
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   user.Email,
//	    Subject:  "Confirm your email",
//	    BodyHTML: body,
//	    Tag:      "confirm-registration",
//	})
//
// # Error Handling
//
//   - ErrInvalidConfig: configuration validation failed
//   - ErrInvalidParams: email parameters validation failed
//   - ErrFailedToSendEmail: delivery failed
package email
