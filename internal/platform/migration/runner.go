// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the embedded catalog schema migrations at startup.
//
// Migrations are read from an fs.FS (normally data.Migrations) through the
// golang-migrate iofs source. The applied version is recorded in
// catalog_schema_migrations.
package migration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const (
	// sourceDir is the directory inside the fs.FS holding the .sql files.
	sourceDir = "migrations"

	// VersionTable records the applied migration version.
	VersionTable = "catalog_schema_migrations"
)

// ErrUnsupportedDSN is returned for DSNs that are not postgres:// style URLs.
var ErrUnsupportedDSN = errors.New("migration: DATABASE_URL must be a postgres:// or postgresql:// URL")

// RunUp applies every pending UP migration found in migrations.
//
// # Parameters
//   - dsn: postgres:// or postgresql:// URL, the same value the pool uses.
//   - migrations: filesystem whose migrations/ directory holds the .sql pairs.
//   - logger: Structured logger for migration events.
func RunUp(dsn string, migrations fs.FS, logger *slog.Logger) error {
	databaseURL, err := migrationURL(dsn)
	if err != nil {
		return err
	}

	src, err := openSource(migrations)
	if err != nil {
		return err
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	migrator.Log = newMigrateLogger(logger)

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}

	if isDirty {
		return fmt.Errorf("migration: %s is dirty at version %d, fix the schema and force the version by hand", VersionTable, currentVersion)
	}

	logger.Info("migration_started",
		slog.Uint64("current_version", uint64(currentVersion)),
		slog.String("version_table", VersionTable),
	)

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date", slog.Uint64("version", uint64(currentVersion)))
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, err := migrator.Version()
	if err != nil {
		return fmt.Errorf("migration: failed to read new version: %w", err)
	}
	logger.Info("migration_successful",
		slog.Uint64("from_version", uint64(currentVersion)),
		slog.Uint64("to_version", uint64(newVersion)),
	)

	return nil
}

// openSource wraps the migrations directory of fsys as a golang-migrate source.
func openSource(fsys fs.FS) (source.Driver, error) {
	src, err := iofs.New(fsys, sourceDir)
	if err != nil {
		return nil, fmt.Errorf("migration: failed to open embedded source: %w", err)
	}
	return src, nil
}

// migrationURL rewrites a postgres URL to the pgx5 scheme golang-migrate
// expects and pins the version table. Keyword/value DSNs are rejected.
func migrationURL(dsn string) (string, error) {
	parsed, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedDSN, err)
	}

	switch parsed.Scheme {
	case "postgres", "postgresql", "pgx5":
		parsed.Scheme = "pgx5"
	default:
		return "", ErrUnsupportedDSN
	}

	query := parsed.Query()
	if query.Get("x-migrations-table") == "" {
		query.Set("x-migrations-table", VersionTable)
	}
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// migrateLogger forwards golang-migrate output to slog at debug level.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

// newMigrateLogger turns on golang-migrate's per-step output only when the
// logger would keep debug records.
func newMigrateLogger(logger *slog.Logger) *migrateLogger {
	return &migrateLogger{
		logger:  logger,
		verbose: logger.Enabled(context.Background(), slog.LevelDebug),
	}
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug("migration_step", slog.String("detail", fmt.Sprintf(format, args...)))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return l.verbose
}
