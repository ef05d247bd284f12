package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultPrefix is prepended to every env tag.
const DefaultPrefix = "APP_"

type options struct {
	prefix   string
	envFiles []string
	environ  map[string]string
}

type Option func(*options)

// WithPrefix overrides DefaultPrefix. An empty prefix reads tags as written.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvFiles sets the dotenv files loaded before parsing.
// Missing files are skipped; earlier files win over later ones, and the real
// environment wins over all of them.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.envFiles = files
	}
}

// WithEnvironment parses from the given map instead of the process
// environment. Dotenv files are not loaded.
func WithEnvironment(environ map[string]string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// Load populates v from dotenv files and the environment.
// Values are read on every call; pass the result to constructors instead of
// calling Load from deep inside the application.
//
// Example:
//
//	type AppConfig struct {
//		HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"` // APP_HTTP_ADDR
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := options{
		prefix:   DefaultPrefix,
		envFiles: []string{".env"},
	}
	for _, opt := range opts {
		opt(&o)
	}

	envOpts := env.Options{Prefix: o.prefix}
	if o.environ != nil {
		envOpts.Environment = o.environ
	} else if err := loadEnvFiles(o.envFiles); err != nil {
		return err
	}

	if err := env.ParseWithOptions(v, envOpts); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

func loadEnvFiles(files []string) error {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}
