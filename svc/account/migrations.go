package account

import "embed"

// MigrationsDir is the directory inside Migrations holding the schema.
const MigrationsDir = "migrations"

// Migrations holds the goose migrations for the users table.
// Apply them with pg.Migrate(ctx, pool, cfg, log, pg.WithMigrationsFS(account.Migrations)).
//
//go:embed migrations/*.sql
var Migrations embed.FS
