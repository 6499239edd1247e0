// Package engine implements the table engine: the in-memory table map, the
// per-table auto-increment counters, and the whole-dataset load/persist
// cycle. One Engine owns one named dataset; there is no package-global
// state.
//
// Reads serve purely from memory and hand out defensive copies. Every
// mutation rewrites the entire dataset through the storage backend before
// returning. A sync.RWMutex serializes mutators against each other and
// against readers; the single-logical-caller model of the original design
// is not assumed here.
package engine

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/mesh-intelligence/larder/internal/query"
	"github.com/mesh-intelligence/larder/internal/storage"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// Engine owns all tables and counters for one dataset.
type Engine struct {
	mu          sync.RWMutex
	initialized bool
	dataset     string
	storage     types.Storage
	tables      map[string][]types.Record
	counters    map[string]int64
}

// New creates an engine. It is unusable until Initialize succeeds.
func New() *Engine {
	return &Engine{}
}

// Initialize binds the engine to a dataset name and a storage backend, then
// loads any existing dataset under that name. A nil backend selects the
// default file backend at the platform data directory. Idempotent: a second
// call while initialized is a no-op.
//
// Load failure of any kind, a missing blob, malformed JSON, or a read
// error, yields an empty dataset rather than an error: a corrupt existing
// file must not prevent startup.
func (e *Engine) Initialize(dataset string, backend types.Storage) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}

	if backend == nil {
		fs, err := storage.NewFileStorage("")
		if err != nil {
			return fmt.Errorf("opening default backend: %w", err)
		}
		backend = fs
	}

	e.dataset = dataset
	e.storage = backend
	e.tables = make(map[string][]types.Record)
	e.counters = make(map[string]int64)

	if text, ok, err := backend.Read(dataset); err == nil && ok {
		if ds, derr := decodeDataset(text); derr == nil {
			e.tables = ds.Tables
			e.counters = ds.AutoIncrementCounters
		}
	}

	e.initialized = true
	return nil
}

// CreateTable inserts an empty table and a zero counter for name if absent.
// An existing table is left untouched.
func (e *Engine) CreateTable(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return types.ErrNotInitialized
	}
	e.createTableLocked(name)
	return nil
}

// TableExists reports whether a table named name exists.
func (e *Engine) TableExists(name string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.initialized {
		return false, types.ErrNotInitialized
	}
	_, ok := e.tables[name]
	return ok, nil
}

// TableNames returns the names of all tables, sorted.
func (e *Engine) TableNames() ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.initialized {
		return nil, types.ErrNotInitialized
	}
	names := make([]string, 0, len(e.tables))
	for name := range e.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// TableData returns a defensive copy of the table's records in insertion
// order, creating the table first if absent.
func (e *Engine) TableData(name string) ([]types.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return nil, types.ErrNotInitialized
	}
	e.createTableLocked(name)
	return types.CloneRecords(e.tables[name]), nil
}

// Insert appends a record to the table, creating the table if needed. A
// record without an id (or with an explicit null id) is assigned the next
// counter value. The full dataset is persisted before the stored record is
// returned, so no reader observes an unfinalized id.
func (e *Engine) Insert(table string, rec types.Record) (types.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return nil, types.ErrNotInitialized
	}
	e.createTableLocked(table)

	stored := rec.Clone()
	if stored == nil {
		stored = types.Record{}
	}
	if v, ok := stored[types.IDField]; !ok || v == nil {
		e.counters[table]++
		stored[types.IDField] = e.counters[table]
	}
	e.tables[table] = append(e.tables[table], stored)

	if err := e.persistLocked(); err != nil {
		// The in-memory append stands; memory is ahead of disk until the
		// next successful persist.
		return nil, err
	}
	return stored.Clone(), nil
}

// Find returns the records matching where: every (field, value) pair must
// match by equality, AND semantics. A nil or empty where returns a full
// defensive copy of the table in insertion order. The table is created if
// absent.
func (e *Engine) Find(table string, where types.Record) ([]types.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return nil, types.ErrNotInitialized
	}
	e.createTableLocked(table)

	if len(where) == 0 {
		return types.CloneRecords(e.tables[table]), nil
	}
	var out []types.Record
	for _, row := range e.tables[table] {
		if matchesWhere(row, where) {
			out = append(out, row.Clone())
		}
	}
	return out, nil
}

// FindByID returns the first record whose id equals id, or ErrNotFound.
func (e *Engine) FindByID(table string, id int64) (types.Record, error) {
	rows, err := e.Find(table, types.Record{types.IDField: id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, types.ErrNotFound
	}
	return rows[0], nil
}

// Update merges patch into every record matching where and returns the
// number of records updated. The patch's id field is ignored: assigned
// identifiers are immutable. Nothing matching is a zero count, not an
// error. The dataset is persisted only when at least one record changed.
func (e *Engine) Update(table string, patch, where types.Record) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return 0, types.ErrNotInitialized
	}
	e.createTableLocked(table)

	count := 0
	rows := e.tables[table]
	for i, row := range rows {
		if !matchesWhere(row, where) {
			continue
		}
		merged := row.Clone()
		for field, value := range patch {
			if field == types.IDField {
				continue
			}
			merged[field] = value
		}
		rows[i] = merged.Clone()
		count++
	}

	if count > 0 {
		if err := e.persistLocked(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// Delete removes every record matching where and returns the count
// removed. The dataset is persisted only when the count is nonzero.
func (e *Engine) Delete(table string, where types.Record) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return 0, types.ErrNotInitialized
	}
	e.createTableLocked(table)

	rows := e.tables[table]
	kept := rows[:0:0]
	for _, row := range rows {
		if !matchesWhere(row, where) {
			kept = append(kept, row)
		}
	}
	count := len(rows) - len(kept)
	e.tables[table] = kept

	if count > 0 {
		if err := e.persistLocked(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// DropTable removes the table and its counter entirely. A recreated table
// starts counting from 1 again. The dataset is persisted even when the
// table never existed.
func (e *Engine) DropTable(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return types.ErrNotInitialized
	}
	delete(e.tables, name)
	delete(e.counters, name)
	return e.persistLocked()
}

// Query returns a pipeline over a snapshot of the table's current records.
// Later table mutations never affect the in-flight query.
func (e *Engine) Query(table string) (*query.Query, error) {
	rows, err := e.TableData(table)
	if err != nil {
		return nil, err
	}
	return query.New(rows), nil
}

// Close persists once more, releases the backend if it is closable, clears
// all in-memory state, and marks the engine uninitialized. A second Close
// is a silent no-op.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return nil
	}
	if err := e.persistLocked(); err != nil {
		return err
	}
	if closer, ok := e.storage.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("closing backend: %w", err)
		}
	}
	e.tables = nil
	e.counters = nil
	e.storage = nil
	e.initialized = false
	return nil
}

// createTableLocked implements create-on-access. Caller holds the write lock.
func (e *Engine) createTableLocked(name string) {
	if _, ok := e.tables[name]; !ok {
		e.tables[name] = []types.Record{}
		e.counters[name] = 0
	}
}

// persistLocked serializes the full dataset and hands it to the backend in
// one write. Write failures propagate to the caller of the triggering
// mutation. Caller holds the write lock.
func (e *Engine) persistLocked() error {
	text, err := encodeDataset(types.Dataset{
		Tables:                e.tables,
		AutoIncrementCounters: e.counters,
		LastModified:          time.Now().UTC().Format(time.RFC3339),
		Version:               types.FormatVersion,
	})
	if err != nil {
		return err
	}
	if err := e.storage.Write(e.dataset, text); err != nil {
		return fmt.Errorf("persisting dataset %q: %w", e.dataset, err)
	}
	return nil
}

// matchesWhere reports whether row matches every pair of where by equality.
// An absent field compares as null.
func matchesWhere(row, where types.Record) bool {
	for field, value := range where {
		if !query.Equal(row[field], value) {
			return false
		}
	}
	return true
}
