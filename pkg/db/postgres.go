package db

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"trip-service/internal/logger"
)

// DB wraps a pgx connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// Connect opens a connection pool, retrying until Postgres is reachable
// or ctx is cancelled.
func Connect(ctx context.Context, dsn string) (*DB, error) {
	var pool *pgxpool.Pool
	var err error
	for attempt := 1; attempt <= 30; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		pool, err = pgxpool.New(ctx, dsn)
		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr == nil {
				logger.Info("connected to postgres", nil)
				return &DB{Pool: pool}, nil
			} else {
				err = pingErr
				pool.Close()
			}
		}
		logger.Warn("postgres not ready, retrying",
			map[string]any{"attempt": attempt, "error": err.Error()})
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("postgres: no connection after 30 attempts: %w", err)
}

// RunMigrations applies the embedded *.sql files in name order. Each
// migration's statements and its schema_migrations record commit in one
// transaction, so a failed migration leaves no half-applied schema.
func (d *DB) RunMigrations(ctx context.Context, migrationFS fs.FS) error {
	_, err := d.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ  DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := sortedSQLFiles(migrationFS)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	for _, file := range files {
		var applied bool
		err := d.Pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version=$1)", file).
			Scan(&applied)
		if err != nil {
			return fmt.Errorf("check %s: %w", file, err)
		}
		if applied {
			logger.Info("migration already applied", map[string]any{"file": file})
			continue
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		if err := d.applyMigration(ctx, file, string(content)); err != nil {
			return fmt.Errorf("apply %s: %w", file, err)
		}
		logger.Info("migration applied", map[string]any{"file": file})
	}
	return nil
}

func (d *DB) applyMigration(ctx context.Context, version, sql string) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, sql); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// sortedSQLFiles lists the top-level *.sql entries of the migration FS
// in lexical order; numeric prefixes on the file names give the apply
// order.
func sortedSQLFiles(migrationFS fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
