package email

import "fmt"

// NewSenderFromConfig returns a Postmark sender when tokens are configured and
// a DevSender writing to cfg.DevDir otherwise.
func NewSenderFromConfig(cfg Config) (EmailSender, error) {
	if cfg.UsesPostmark() {
		return NewPostmarkClient(cfg)
	}
	if cfg.DevDir == "" {
		return nil, fmt.Errorf("%w: either Postmark tokens or DevDir must be set", ErrInvalidConfig)
	}
	return NewDevSender(cfg.DevDir), nil
}
