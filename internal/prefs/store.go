// Package prefs is the client's durable key-value preference store, the Go
// rendition of the browser client's localStorage usage. It currently holds a
// single boolean (sidebar collapsed) but is schema'd as generic key-value.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"
)

const (
	// KeySidebarCollapsed persists the sidebar collapse preference across
	// client restarts.
	KeySidebarCollapsed = "sidebar.collapsed"
)

type Store struct {
	db *sql.DB
}

// Open creates (if needed) and opens the preference database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open prefs db: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS preference (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create prefs schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM preference WHERE key = ?`, key)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("prefs get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preference (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("prefs set %q: %w", key, err)
	}
	return nil
}

// GetBool returns the stored boolean, or the given default when the key is
// absent or unparseable.
func (s *Store) GetBool(ctx context.Context, key string, defaultValue bool) (bool, error) {
	value, found, err := s.Get(ctx, key)
	if err != nil {
		return defaultValue, err
	}
	if !found {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue, nil
	}
	return parsed, nil
}

func (s *Store) SetBool(ctx context.Context, key string, value bool) error {
	return s.Set(ctx, key, strconv.FormatBool(value))
}
