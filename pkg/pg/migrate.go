package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// goose keeps its settings in package globals.
// migrateLogger is the subset of *slog.Logger that receives goose output.
type migrateLogger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

var gooseMu sync.Mutex

type migrateOptions struct {
	fsys fs.FS
}

type MigrateOption func(*migrateOptions)

// WithMigrationsFS reads migrations from fsys (usually an embed.FS) instead of disk.
func WithMigrationsFS(fsys fs.FS) MigrateOption {
	return func(o *migrateOptions) {
		o.fsys = fsys
	}
}

// Migrate applies pending goose migrations found at cfg.MigrationsPath.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config, log migrateLogger, opts ...MigrateOption) error {
	var o migrateOptions
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.MigrationsPath == "" {
		return errors.Join(ErrFailedToApplyMigrations, ErrMigrationPathNotProvided)
	}

	if err := checkMigrationsDir(o.fsys, cfg.MigrationsPath); err != nil {
		return err
	}

	// goose needs database/sql; this shares the pool's connections.
	db := stdlib.OpenDBFromPool(pool)
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close database connection", "error", err)
		}
	}(db)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(o.fsys)
	defer goose.SetBaseFS(nil)

	goose.SetLogger(newSlogAdapter(ctx, log))
	if cfg.MigrationsTable != "" {
		goose.SetTableName(cfg.MigrationsTable)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	if err := goose.UpContext(ctx, db, cfg.MigrationsPath); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	return nil
}

func checkMigrationsDir(fsys fs.FS, path string) error {
	var err error
	if fsys != nil {
		_, err = fs.Stat(fsys, path)
	} else {
		_, err = os.Stat(path)
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return errors.Join(ErrMigrationsDirNotFound, err)
	default:
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
}

// migrateSlogAdapter routes goose's Printf-style output to the application logger.
type migrateSlogAdapter struct {
	ctx context.Context
	log migrateLogger
}

func newSlogAdapter(ctx context.Context, log migrateLogger) goose.Logger {
	return &migrateSlogAdapter{ctx: ctx, log: log}
}

func (a *migrateSlogAdapter) Fatalf(format string, v ...any) {
	a.log.ErrorContext(a.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (a *migrateSlogAdapter) Printf(format string, v ...any) {
	a.log.InfoContext(a.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}
