// Package config loads application configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - Optional dotenv files are loaded first (missing files are skipped, the
//     real environment always wins).
//   - The environment is parsed into any struct using `env` field tags.
//   - Every tag is read with the "APP_" prefix unless WithPrefix says otherwise,
//     so `env:"REDIS_URL"` is read from APP_REDIS_URL.
//
// There is no global cache. Configuration is loaded once in main and the
// resulting structs are passed to constructors.
//
// # Usage
//
//	type DatabaseConfig struct {
//	    ConnURL string `env:"PG_CONN_URL,required"`
//	    MaxConn int32  `env:"PG_MAX_CONN" envDefault:"10"`
//	}
//
//	var db DatabaseConfig
//	if err := config.Load(&db, config.WithEnvFiles(".env", ".env.local")); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// MustLoad panics instead of returning an error.
//
// # Error Handling
//
//   - ErrParsingConfig  – failed to parse env vars into struct.
//   - ErrLoadingEnvFile – an existing dotenv file could not be read.
//   - ErrNilPointer     – nil pointer passed to Load.
package config
