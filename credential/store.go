// Package credential persists the studio's API key and small settings in a
// local SQLite file.
package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// SQLite driver and its embedded WASM build.
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Setting names.
const (
	// KeyName is the name the API key is stored under.
	KeyName = "google_api_key"
	// ModelName stores the selected model id.
	ModelName = "gemini_model"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
    name       TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Store is a name/value settings table.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("credential: mkdir db dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("credential: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("credential: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under name. A missing entry returns "" and
// false without an error.
func (s *Store) Get(ctx context.Context, name string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE name = ?`, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("credential: get %s: %w", name, err)
	}
	return v, true, nil
}

// Set stores value under name, replacing any previous value.
func (s *Store) Set(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO settings (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
    `, name, value)
	if err != nil {
		return fmt.Errorf("credential: set %s: %w", name, err)
	}
	return nil
}

// Delete removes name. Deleting a missing entry is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE name = ?`, name); err != nil {
		return fmt.Errorf("credential: delete %s: %w", name, err)
	}
	return nil
}

// APIKey returns the stored API key, or "" if none is stored.
func (s *Store) APIKey(ctx context.Context) (string, error) {
	v, _, err := s.Get(ctx, KeyName)
	return v, err
}

// SaveAPIKey stores key trimmed of surrounding spaces. An empty key removes
// the entry.
func (s *Store) SaveAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return s.Delete(ctx, KeyName)
	}
	return s.Set(ctx, KeyName, key)
}
