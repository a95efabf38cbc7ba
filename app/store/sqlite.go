package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver
)

// SQLite implements Engine with a single sqlite table. Keys are stored as BLOB,
// sqlite compares blobs with memcmp, so ORDER BY id follows raw byte order.
type SQLite struct {
	db *sqlx.DB
}

// NewSQLite opens or creates tasks.db in location directory
func NewSQLite(location string) (*SQLite, error) {
	if err := os.MkdirAll(location, 0o700); err != nil {
		return nil, fmt.Errorf("failed to make %s: %w", location, err)
	}

	// pragmas set per connection, WAL for concurrent readers and FULL sync for durable writes
	dsn := "file:" + filepath.Join(location, "tasks.db") +
		"?_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)&_pragma=busy_timeout(5000)"
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS tasks (id BLOB PRIMARY KEY, data BLOB NOT NULL) WITHOUT ROWID`); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to create tasks table: %w (also failed to close db: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to create tasks table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Set writes value under key
func (s *SQLite) Set(key, value []byte) error {
	if _, err := s.db.Exec(`INSERT OR REPLACE INTO tasks (id, data) VALUES (?, ?)`, key, value); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}

// Last returns the greatest key with its value
func (s *SQLite) Last() (key, value []byte, err error) {
	var row struct {
		ID   []byte `db:"id"`
		Data []byte `db:"data"`
	}
	err = s.db.Get(&row, `SELECT id, data FROM tasks ORDER BY id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query last task: %w", err)
	}
	return row.ID, row.Data, nil
}

// Delete removes key, missing key is not an error
func (s *SQLite) Delete(key []byte) (existed bool, err error) {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, key)
	if err != nil {
		return false, fmt.Errorf("failed to delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}

// Len counts rows
func (s *SQLite) Len() (int, error) {
	var n int
	if err := s.db.Get(&n, `SELECT COUNT(*) FROM tasks`); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return n, nil
}

// Compact moves WAL content into the database file and truncates the WAL
func (s *SQLite) Compact() error {
	if _, err := s.db.Exec(`PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("failed to checkpoint: %w", err)
	}
	return nil
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}
