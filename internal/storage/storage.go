// Package storage provides the concrete Storage backends the engine
// persists through: a file backend (default), a SQLite backend, and an
// in-memory backend. Backends are selected by configuration, not by
// subclassing.
package storage

import (
	"fmt"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Open constructs the backend named by cfg.Backend. An empty DataDir falls
// back to the platform data directory for the file and sqlite backends.
func Open(cfg types.Config) (types.Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case types.BackendFile:
		return NewFileStorage(cfg.DataDir)
	case types.BackendSQLite:
		return NewSQLiteStorage(cfg.DataDir)
	case types.BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, cfg.Backend)
	}
}
