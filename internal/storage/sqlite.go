package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/larder/internal/paths"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// blobSchema holds one serialized dataset per key. The dataset stays a
// single opaque blob; SQLite only replaces the file-per-key layout.
const blobSchema = `
CREATE TABLE IF NOT EXISTS blobs (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLiteStorage persists dataset blobs in a single SQLite database file.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens (or creates) larder.db inside dir. An empty dir
// resolves to the platform data directory.
func NewSQLiteStorage(dir string) (*SQLiteStorage, error) {
	if dir == "" {
		var err error
		dir, err = paths.DefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("resolving data dir: %w", err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "larder.db"))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if _, err := db.Exec(blobSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating blobs table: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

// Read returns the stored text for key. A missing row is (_, false, nil).
func (s *SQLiteStorage) Read(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM blobs WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

// Write upserts text under key.
func (s *SQLiteStorage) Write(key, text string) error {
	_, err := s.db.Exec(`
		INSERT INTO blobs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, text)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Exists reports whether a row for key is present.
func (s *SQLiteStorage) Exists(key string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM blobs WHERE key = ?", key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", key, err)
	}
	return true, nil
}

// Delete removes the row for key. A missing row is success.
func (s *SQLiteStorage) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM blobs WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

var _ types.Storage = (*SQLiteStorage)(nil)
