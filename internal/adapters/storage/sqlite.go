// Package storage provides the SQLite-backed implementations of the
// settings store and session log ports.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/xvierd/pomo-cli/internal/ports"
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database. It implements ports.SettingsStore
// directly; the session log is reached through Sessions().
type Store struct {
	db       *sql.DB
	sessions *sessionLog
}

var _ ports.SettingsStore = (*Store)(nil)

// Open opens (or creates) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	s := &Store{db: db, sessions: &sessionLog{db: db}}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// OpenMemory opens an in-memory database, used by tests.
func OpenMemory() (*Store, error) {
	return Open(":memory:")
}

// Sessions returns the focus session log.
func (s *Store) Sessions() ports.SessionLog {
	return s.sessions
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS focus_sessions (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL,
		seconds REAL NOT NULL,
		git_branch TEXT,
		git_commit TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_focus_sessions_ended ON focus_sessions(ended_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Get returns the stored value for a key.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

// Set writes a value, replacing any previous one.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Delete removes a key.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return err
}
