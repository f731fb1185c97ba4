// Package migrate applies the embedded SQL schema migrations.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Migration is one SQL file, versioned by its numeric filename prefix.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// AppliedMigration is a row of the schema_migrations table.
type AppliedMigration struct {
	Version   int
	Name      string
	AppliedAt time.Time
}

// Migrator handles database schema migrations
type Migrator struct {
	DB  *sql.DB
	FS  fs.FS
	Dir string
}

// NewMigrator creates a new migrator reading *.sql files from dir in fsys
func NewMigrator(db *sql.DB, fsys fs.FS, dir string) *Migrator {
	return &Migrator{DB: db, FS: fsys, Dir: dir}
}

// InitializeSchema creates the version tracking table
func (m *Migrator) InitializeSchema(ctx context.Context) error {
	_, err := m.DB.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INT PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`)
	return err
}

// GetCurrentVersion gets the highest applied migration version
func (m *Migrator) GetCurrentVersion(ctx context.Context) (int, error) {
	var version int
	err := m.DB.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(version), 0) FROM schema_migrations
	`).Scan(&version)
	return version, err
}

// Load reads and orders the migration files.
func (m *Migrator) Load() ([]Migration, error) {
	entries, err := fs.ReadDir(m.FS, m.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var migrations []Migration
	seen := make(map[int]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version, err := ParseVersion(entry.Name())
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s", version, prev, entry.Name())
		}
		seen[version] = entry.Name()

		body, err := fs.ReadFile(m.FS, path.Join(m.Dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    entry.Name(),
			SQL:     string(body),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// ParseVersion extracts the numeric prefix of a migration filename such as
// 0002_add_index.sql.
func ParseVersion(name string) (int, error) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, fmt.Errorf("migration %s: missing version prefix", name)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version <= 0 {
		return 0, fmt.Errorf("migration %s: invalid version prefix %q", name, prefix)
	}
	return version, nil
}

// Apply runs every migration newer than the current version, each in its
// own transaction, and returns the ones it applied.
func (m *Migrator) Apply(ctx context.Context) ([]Migration, error) {
	if err := m.InitializeSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	currentVersion, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current version: %w", err)
	}

	migrations, err := m.Load()
	if err != nil {
		return nil, err
	}

	var applied []Migration
	for _, mig := range Pending(migrations, currentVersion) {
		if err := m.applyOne(ctx, mig); err != nil {
			return applied, err
		}
		slog.InfoContext(ctx, "migration applied", "version", mig.Version, "name", mig.Name)
		applied = append(applied, mig)
	}

	return applied, nil
}

// Pending returns the migrations with a version above current.
func Pending(migrations []Migration, current int) []Migration {
	var pending []Migration
	for _, mig := range migrations {
		if mig.Version > current {
			pending = append(pending, mig)
		}
	}
	return pending
}

func (m *Migrator) applyOne(ctx context.Context, mig Migration) error {
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if _, err := tx.ExecContext(ctx, mig.SQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to apply migration %s: %w", mig.Name, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO schema_migrations (version, name)
		VALUES ($1, $2)
	`, mig.Version, mig.Name); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Status lists the applied migrations, oldest first.
func (m *Migrator) Status(ctx context.Context) ([]AppliedMigration, error) {
	if err := m.InitializeSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	rows, err := m.DB.QueryContext(ctx, `
		SELECT version, name, applied_at FROM schema_migrations ORDER BY version
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applied []AppliedMigration
	for rows.Next() {
		var a AppliedMigration
		if err := rows.Scan(&a.Version, &a.Name, &a.AppliedAt); err != nil {
			return nil, err
		}
		applied = append(applied, a)
	}

	return applied, rows.Err()
}
