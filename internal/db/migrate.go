// Package db owns the accounting schema: goose migrations embedded in the
// binary, schema version reporting and the optional demo data seed.
//
// Migration files live in internal/db/migrations/ and use goose annotations
// (-- +goose Up / -- +goose Down). On startup RunMigrations applies all
// pending migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"github.com/vsuet/accounting/internal/dbpool"
)

// RunMigrations applies all pending migrations from the provided filesystem.
func RunMigrations(ctx context.Context, pool *dbpool.Pool, log *logrus.Logger, fsys fs.FS) error {
	return runMigrations(ctx, pool.ConnString(), log, fsys)
}

// RunMigrationsURL applies migrations against databaseURL without a pool.
// Used by tests that provision their own database.
func RunMigrationsURL(ctx context.Context, databaseURL string, log *logrus.Logger, fsys fs.FS) error {
	return runMigrations(ctx, databaseURL, log, fsys)
}

func runMigrations(ctx context.Context, connStr string, log *logrus.Logger, fsys fs.FS) error {
	// goose requires a *sql.DB; open one through the pgx stdlib driver.
	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("opening sql.DB for migrations: %w", err)
	}
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("creating goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	for _, r := range results {
		if r.Error != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", r.Source.Version, r.Source.Path, r.Error)
		}

		log.WithFields(logrus.Fields{
			"version":  r.Source.Version,
			"file":     r.Source.Path,
			"duration": r.Duration,
		}).Info("migration applied")
	}

	if len(results) == 0 {
		log.Debug("all migrations already applied")
	}

	return nil
}
