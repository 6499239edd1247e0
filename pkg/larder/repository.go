package larder

import (
	"fmt"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Model is the record mapping convention a domain type implements to be
// stored through a Repository: a nullable integer identifier plus a flat
// field mapping. The inverse reconstruction is supplied per repository.
type Model interface {
	// RecordID returns the assigned identifier. The second return is false
	// while the model has never been saved.
	RecordID() (int64, bool)

	// SetRecordID stores the identifier assigned on first save.
	SetRecordID(id int64)

	// ToRecord serializes the model to a flat field mapping. The id field
	// is filled in by the repository.
	ToRecord() types.Record
}

// Repository binds one model type to one table of an engine. It is thin
// glue over the engine's bulk operations; the engine never sees the domain
// type, only records.
type Repository[T Model] struct {
	engine     *Engine
	table      string
	fromRecord func(types.Record) (T, error)
}

// NewRepository creates a repository for table on e. fromRecord
// reconstructs a model from a stored record.
func NewRepository[T Model](e *Engine, table string, fromRecord func(types.Record) (T, error)) *Repository[T] {
	return &Repository[T]{engine: e, table: table, fromRecord: fromRecord}
}

// Save inserts the model as a new record and writes the assigned id back
// into the model. A model that already carries an id keeps it.
func (r *Repository[T]) Save(model T) error {
	rec := model.ToRecord()
	if rec == nil {
		rec = types.Record{}
	}
	if id, ok := model.RecordID(); ok {
		rec[types.IDField] = id
	}
	stored, err := r.engine.Insert(r.table, rec)
	if err != nil {
		return err
	}
	if id, ok := stored.ID(); ok {
		model.SetRecordID(id)
	}
	return nil
}

// Update rewrites the stored record matching the model's id. A model
// without an id fails with ErrMissingID before any engine call; an id that
// matches no stored record fails with ErrNotFound, unlike the engine's
// bulk update which reports a zero count.
func (r *Repository[T]) Update(model T) error {
	id, ok := model.RecordID()
	if !ok {
		return fmt.Errorf("updating %s: %w", r.table, types.ErrMissingID)
	}
	count, err := r.engine.Update(r.table, model.ToRecord(), types.Record{types.IDField: id})
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("updating %s id %d: %w", r.table, id, types.ErrNotFound)
	}
	return nil
}

// Delete removes the stored record matching the model's id. A model
// without an id fails with ErrMissingID before any engine call.
func (r *Repository[T]) Delete(model T) error {
	id, ok := model.RecordID()
	if !ok {
		return fmt.Errorf("deleting from %s: %w", r.table, types.ErrMissingID)
	}
	_, err := r.engine.Delete(r.table, types.Record{types.IDField: id})
	return err
}

// Get reconstructs the model stored under id. Returns ErrNotFound when no
// record matches.
func (r *Repository[T]) Get(id int64) (T, error) {
	var zero T
	rec, err := r.engine.FindByID(r.table, id)
	if err != nil {
		return zero, err
	}
	return r.fromRecord(rec)
}

// All reconstructs every model in the table in insertion order.
func (r *Repository[T]) All() ([]T, error) {
	rows, err := r.engine.Find(r.table, nil)
	if err != nil {
		return nil, err
	}
	models := make([]T, 0, len(rows))
	for _, rec := range rows {
		m, err := r.fromRecord(rec)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}

// Query returns a pipeline over a snapshot of the table's records.
func (r *Repository[T]) Query() (*Query, error) {
	return r.engine.Query(r.table)
}
