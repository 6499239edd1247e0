// Package larder is the public surface of the larder record store: an
// in-process table manager that keeps named tables of key-value records in
// memory, assigns auto-increment integer ids, and rewrites the whole
// dataset through a storage backend after every mutation.
package larder

import (
	"github.com/mesh-intelligence/larder/internal/engine"
	"github.com/mesh-intelligence/larder/internal/query"
	"github.com/mesh-intelligence/larder/internal/storage"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// Version is the larder release version.
const Version = "0.1.0"

// Engine is the table engine; see the engine package for operation
// semantics.
type Engine = engine.Engine

// Query is the chainable filter/sort/paginate pipeline over a table
// snapshot.
type Query = query.Query

// SortSpec is one tie-break level for Query.OrderByMultiple.
type SortSpec = query.SortSpec

// New creates an engine. Call Initialize (or use Open) before any table
// operation.
func New() *Engine {
	return engine.New()
}

// Open constructs the backend selected by cfg, creates an engine, and
// initializes it against dataset. The caller owns the returned engine and
// closes it when done.
func Open(cfg types.Config, dataset string) (*Engine, error) {
	backend, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}
	e := engine.New()
	if err := e.Initialize(dataset, backend); err != nil {
		return nil, err
	}
	return e, nil
}
