package infra

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migration is one versioned schema script.
type Migration struct {
	Version string
	SQL     string
}

const (
	qCreateMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW())`
	qMigrationApplied      = `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`
	qRecordMigration       = `INSERT INTO schema_migrations (version) VALUES ($1)`
)

// LoadMigrations returns the embedded schema scripts ordered by file name.
func LoadMigrations() ([]Migration, error) {
	return loadMigrations(migrationFS, "migrations")
}

func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var out []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		body, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		out = append(out, Migration{
			Version: strings.TrimSuffix(entry.Name(), ".sql"),
			SQL:     string(body),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Migrate applies every migration not yet recorded in schema_migrations. Each
// script runs in its own transaction together with its bookkeeping row.
func Migrate(ctx context.Context, db *sql.DB, migrations []Migration, logger Logger) (int, error) {
	if _, err := db.ExecContext(ctx, qCreateMigrationsTable); err != nil {
		return 0, fmt.Errorf("ensure schema_migrations: %w", err)
	}
	applied := 0
	for _, m := range migrations {
		var done bool
		if err := db.QueryRowContext(ctx, qMigrationApplied, m.Version).Scan(&done); err != nil {
			return applied, fmt.Errorf("check migration %s: %w", m.Version, err)
		}
		if done {
			logger.Debug().Str("version", m.Version).Msg("migrate: already applied")
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return applied, fmt.Errorf("begin migration %s: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("apply migration %s: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, qRecordMigration, m.Version); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("record migration %s: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("commit migration %s: %w", m.Version, err)
		}
		logger.Info().Str("version", m.Version).Msg("migrate: applied")
		applied++
	}
	return applied, nil
}
