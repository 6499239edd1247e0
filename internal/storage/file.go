package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/larder/internal/paths"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// FileStorage persists each key as a <key>.json file inside a single data
// directory resolved once at construction. Writes use the temp-file, fsync,
// rename pattern so a dataset file is replaced atomically or not at all.
type FileStorage struct {
	dir string
}

// NewFileStorage creates a file backend rooted at dir, creating the
// directory if needed. An empty dir resolves to the platform data directory.
func NewFileStorage(dir string) (*FileStorage, error) {
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
	return &FileStorage{dir: dir}, nil
}

// Dir returns the resolved data directory.
func (s *FileStorage) Dir() string {
	return s.dir
}

// Read returns the stored text for key line-for-line as written.
// A missing file is (_, false, nil).
func (s *FileStorage) Read(key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return string(data), true, nil
}

// Write atomically replaces the file for key with text.
func (s *FileStorage) Write(key, text string) error {
	path := s.path(key)
	tmp, err := os.CreateTemp(s.dir, ".dataset-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing dataset: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Exists reports whether a file for key is present.
func (s *FileStorage) Exists(key string) (bool, error) {
	_, err := os.Stat(s.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", key, err)
	}
	return true, nil
}

// Delete removes the file for key. A missing file is success.
func (s *FileStorage) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

func (s *FileStorage) path(key string) string {
	// Keys are dataset names, not paths.
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, key+".json")
}

var _ types.Storage = (*FileStorage)(nil)
