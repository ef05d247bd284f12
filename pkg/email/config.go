package email

// Config holds email service configuration.
// Postmark tokens are optional: without them NewSenderFromConfig falls back to
// DevSender, which writes messages to DevDir.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
	DevDir               string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// UsesPostmark reports whether Postmark credentials are configured.
func (c Config) UsesPostmark() bool {
	return c.PostmarkServerToken != "" || c.PostmarkAccountToken != ""
}
