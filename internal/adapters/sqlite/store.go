// Package sqlite adapts an embedded SQLite database to the storage port, for
// single-host deployments that do not want to run Redis.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/url"

	"github.com/pressly/goose/v3"
	// SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/fr0stylo/chaindex/internal/app/ports"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const driver = "sqlite"

// Store wraps a migrated SQLite database as a ports.Storage.
type Store struct {
	db *sql.DB
}

// Open opens the database at path and applies pending migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "data/chaindex"
	}
	db, err := sql.Open(driver, sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(driver); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

func sqliteDSN(path string) string {
	values := url.Values{}
	values.Add("_pragma", "journal_mode(WAL)")
	values.Add("_pragma", "synchronous(NORMAL)")
	values.Add("_pragma", "busy_timeout(5000)")
	return "file:" + path + "?" + values.Encode()
}

// Incr bumps the counter at key in one UPSERT statement. A single statement
// executes atomically under SQLite's writer lock, which preserves the
// no-read-then-write sequence allocation rule across processes sharing the
// file.
func (s *Store) Incr(ctx context.Context, key string) (int64, error) {
	const stmt = `
INSERT INTO kv (key, value) VALUES (?, '1')
ON CONFLICT (key) DO UPDATE SET value = CAST(CAST(value AS INTEGER) + 1 AS TEXT)
RETURNING CAST(value AS INTEGER)`

	var value int64
	if err := s.db.QueryRowContext(ctx, stmt, key).Scan(&value); err != nil {
		return 0, fmt.Errorf("%w: incr %s: %w", ports.ErrStorageUnavailable, key, err)
	}
	return value, nil
}

// Get returns the value at key, or found=false when absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %s: %w", ports.ErrStorageUnavailable, key, err)
	}
	return value, true, nil
}

// Set writes value at key, overwriting any previous value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	const stmt = `
INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value`

	if _, err := s.db.ExecContext(ctx, stmt, key, value); err != nil {
		return fmt.Errorf("%w: set %s: %w", ports.ErrStorageUnavailable, key, err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
