// Package pg provides utilities for working with PostgreSQL through pgx/v5:
// a retrying pool constructor, goose migrations, a health check and error
// classifiers.
//
// # Usage
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	if err := pg.Migrate(ctx, pool, cfg, log, pg.WithMigrationsFS(migrations)); err != nil {
//	    return err
//	}
//
//	health := pg.Healthcheck(pool)
//
// # Configuration
//
// Config fields are populated from environment variables; see the struct tags
// for names and defaults.
//
// # Error Handling
//
// IsDuplicateKeyError and IsNotFoundError unwrap errors returned by pgx and
// *pgconn.PgError so repositories can translate them into domain errors.
package pg
