// Package session persists the signed-in user's credentials between
// runs, standing in for the browser cookies the web client used.
package session

import (
	"database/sql"
	"errors"
	"fmt"

	"tablenest/internal/model"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS session (
    id         INTEGER PRIMARY KEY CHECK (id = 1),
    user_id    INTEGER NOT NULL,
    auth_token TEXT NOT NULL,
    email      TEXT,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);
`

// Store holds at most one saved session.
type Store struct {
	db *sql.DB
}

// Open opens or creates the session database and initializes the schema.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping session database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize session schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the saved credentials, if any.
func (s *Store) Load() (model.Credentials, string, bool, error) {
	var creds model.Credentials
	var email sql.NullString

	row := s.db.QueryRow(`SELECT user_id, auth_token, email FROM session WHERE id = 1`)
	if err := row.Scan(&creds.UserID, &creds.AuthToken, &email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Credentials{}, "", false, nil
		}
		return model.Credentials{}, "", false, fmt.Errorf("failed to load session: %w", err)
	}

	return creds, email.String, true, nil
}

// Save replaces the stored session.
func (s *Store) Save(creds model.Credentials, email string) error {
	_, err := s.db.Exec(`
		INSERT INTO session (id, user_id, auth_token, email) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			auth_token = excluded.auth_token,
			email = excluded.email`,
		creds.UserID, creds.AuthToken, email)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear removes any stored session. Clearing an empty store is a no-op.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
