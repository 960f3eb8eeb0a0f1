// Package store persists cache entries, diagnosis history, and the
// saved caller profile in a local SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	if dsn != ":memory:" {
		if err := ensureDir(dsn); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CacheRepo returns a CacheRepo backed by this store.
func (s *Store) CacheRepo() CacheRepo {
	return &cacheRepo{db: s.db}
}

// HistoryRepo returns a HistoryRepo backed by this store.
func (s *Store) HistoryRepo() HistoryRepo {
	return &historyRepo{db: s.db}
}

// ProfileRepo returns a ProfileRepo backed by this store.
func (s *Store) ProfileRepo() ProfileRepo {
	return &profileRepo{db: s.db}
}

// applyPragmas configures SQLite for single-user performance.
// busy_timeout goes first so the rest wait on locks.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key         TEXT PRIMARY KEY,
	diagnosis   TEXT NOT NULL,
	os          TEXT NOT NULL,
	pm          TEXT NOT NULL,
	hit_count   INTEGER NOT NULL DEFAULT 0,
	created_at  TIMESTAMP NOT NULL,
	expires_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS diagnosis_history (
	id          TEXT PRIMARY KEY,
	error_text  TEXT NOT NULL,
	error_type  TEXT NOT NULL,
	source      TEXT NOT NULL,
	confidence  REAL NOT NULL,
	diagnosis   TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS saved_profile (
	id          INTEGER PRIMARY KEY CHECK (id = 1),
	os          TEXT NOT NULL,
	pm          TEXT NOT NULL,
	editor      TEXT NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);
`

// DefaultDBPath resolves the database file path in priority order:
// 1. ERRDOCTOR_DB environment variable
// 2. $XDG_DATA_HOME/errdoctor/errdoctor.db
// 3. ~/.local/share/errdoctor/errdoctor.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("ERRDOCTOR_DB"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "errdoctor", "errdoctor.db"), nil
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
