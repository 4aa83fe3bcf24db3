// Package store handles SQLite persistence for the CLI.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for local preferences.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS theme_preferences (
			owner TEXT PRIMARY KEY,
			dark INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadTheme returns the stored preference for owner. found is false when
// nothing has been stored yet.
func (s *Store) LoadTheme(ctx context.Context, owner string) (dark bool, found bool, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT dark FROM theme_preferences WHERE owner = ?`, owner,
	).Scan(&dark)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, false, nil
		}
		return false, false, err
	}
	return dark, true, nil
}

// SaveTheme inserts or replaces the preference for owner.
func (s *Store) SaveTheme(ctx context.Context, owner string, dark bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO theme_preferences (owner, dark, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(owner) DO UPDATE SET dark = excluded.dark, updated_at = excluded.updated_at`,
		owner, dark, time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}
