package account

// Config holds the frontend pages the confirmation link redirects to.
type Config struct {
	FrontendURL         string `env:"FRONTEND_URL,required"`
	ConfirmedPath       string `env:"FRONTEND_CONFIRMED_PATH" envDefault:"/auth/confirmed"`
	RegenerateTokenPath string `env:"FRONTEND_REGENERATE_TOKEN_PATH" envDefault:"/auth/regenerate-token"`
	UnavailablePath     string `env:"FRONTEND_UNAVAILABLE_PATH" envDefault:"/auth/unavailable"`
	ErrorPath           string `env:"FRONTEND_ERROR_PATH" envDefault:"/auth/error"`
}

func (c Config) withDefaults() Config {
	if c.ConfirmedPath == "" {
		c.ConfirmedPath = "/auth/confirmed"
	}
	if c.RegenerateTokenPath == "" {
		c.RegenerateTokenPath = "/auth/regenerate-token"
	}
	if c.UnavailablePath == "" {
		c.UnavailablePath = "/auth/unavailable"
	}
	if c.ErrorPath == "" {
		c.ErrorPath = "/auth/error"
	}
	return c
}
