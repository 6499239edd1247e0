// Package query implements the chainable filter/sort/paginate evaluator
// over a snapshot of one table's records. A Query never shares state with
// the engine: it is constructed from a deep copy and every stage produces a
// new Query, so chained calls cannot alias each other's working sets.
package query

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Query holds the working set between stages. The first stage error wins
// and short-circuits every later stage and terminal.
type Query struct {
	rows []types.Record
	err  error
}

// SortSpec is one tie-break level for OrderByMultiple.
type SortSpec struct {
	Field      string
	Descending bool
}

// New builds a pipeline over a deep copy of rows. Later mutations of the
// source slice or its records do not affect the query.
func New(rows []types.Record) *Query {
	return &Query{rows: types.CloneRecords(rows)}
}

func (q *Query) next(rows []types.Record) *Query {
	return &Query{rows: rows, err: q.err}
}

func (q *Query) fail(err error) *Query {
	return &Query{err: err}
}

// Where keeps rows whose field equals value. An absent field compares as
// null.
func (q *Query) Where(field string, value any) *Query {
	if q.err != nil {
		return q
	}
	var out []types.Record
	for _, row := range q.rows {
		if Equal(row[field], value) {
			out = append(out, row)
		}
	}
	return q.next(out)
}

// WhereAll keeps rows matching every (field, value) pair by equality.
func (q *Query) WhereAll(conditions types.Record) *Query {
	if q.err != nil {
		return q
	}
	var out []types.Record
	for _, row := range q.rows {
		matched := true
		for field, value := range conditions {
			if !Equal(row[field], value) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, row)
		}
	}
	return q.next(out)
}

// WhereOperator keeps rows where field relates to value by operator. An
// unrecognized operator aborts the chain with ErrInvalidOperator.
func (q *Query) WhereOperator(field, operator string, value any) *Query {
	if q.err != nil {
		return q
	}
	var test func(v any) bool
	switch operator {
	case "=", "==":
		test = func(v any) bool { return Equal(v, value) }
	case "!=", "<>":
		test = func(v any) bool { return !Equal(v, value) }
	case ">":
		test = func(v any) bool { return Compare(v, value) > 0 }
	case ">=":
		test = func(v any) bool { return Compare(v, value) >= 0 }
	case "<":
		test = func(v any) bool { return Compare(v, value) < 0 }
	case "<=":
		test = func(v any) bool { return Compare(v, value) <= 0 }
	case "like":
		needle := strings.ToLower(cast.ToString(value))
		test = func(v any) bool {
			return strings.Contains(strings.ToLower(cast.ToString(v)), needle)
		}
	case "in":
		test = func(v any) bool { return containsValue(value, v) }
	default:
		return q.fail(fmt.Errorf("%w: %q", types.ErrInvalidOperator, operator))
	}

	var out []types.Record
	for _, row := range q.rows {
		if test(row[field]) {
			out = append(out, row)
		}
	}
	return q.next(out)
}

// WhereBetween keeps rows whose field lies within [min, max] inclusive.
func (q *Query) WhereBetween(field string, min, max any) *Query {
	if q.err != nil {
		return q
	}
	var out []types.Record
	for _, row := range q.rows {
		v := row[field]
		if Compare(v, min) >= 0 && Compare(v, max) <= 0 {
			out = append(out, row)
		}
	}
	return q.next(out)
}

// WhereNull keeps rows whose field is null or absent.
func (q *Query) WhereNull(field string) *Query {
	return q.Where(field, nil)
}

// WhereNotNull keeps rows whose field has a non-null value.
func (q *Query) WhereNotNull(field string) *Query {
	if q.err != nil {
		return q
	}
	var out []types.Record
	for _, row := range q.rows {
		if row[field] != nil {
			out = append(out, row)
		}
	}
	return q.next(out)
}

// WhereCustom keeps rows for which the predicate returns true.
func (q *Query) WhereCustom(predicate func(types.Record) bool) *Query {
	if q.err != nil {
		return q
	}
	var out []types.Record
	for _, row := range q.rows {
		if predicate(row) {
			out = append(out, row)
		}
	}
	return q.next(out)
}

// OrderBy stable-sorts the working set ascending by field. Equal keys keep
// their relative order from the prior stage.
func (q *Query) OrderBy(field string) *Query {
	return q.OrderByMultiple([]SortSpec{{Field: field}})
}

// OrderByDesc stable-sorts the working set descending by field.
func (q *Query) OrderByDesc(field string) *Query {
	return q.OrderByMultiple([]SortSpec{{Field: field, Descending: true}})
}

// OrderByMultiple sorts by successive (field, direction) specs; the first
// non-zero comparison wins, and each spec flips only its own sign.
func (q *Query) OrderByMultiple(specs []SortSpec) *Query {
	if q.err != nil {
		return q
	}
	out := make([]types.Record, len(q.rows))
	copy(out, q.rows)
	sort.SliceStable(out, func(i, j int) bool {
		for _, spec := range specs {
			c := Compare(out[i][spec.Field], out[j][spec.Field])
			if spec.Descending {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	return q.next(out)
}

// Limit truncates the working set to its first n rows. A count of zero or
// less, or of the current length or more, leaves the set unchanged.
func (q *Query) Limit(n int) *Query {
	if q.err != nil {
		return q
	}
	if n <= 0 || n >= len(q.rows) {
		return q.next(q.rows)
	}
	return q.next(q.rows[:n])
}

// Offset skips the first n rows. The same boundary guard as Limit applies.
func (q *Query) Offset(n int) *Query {
	if q.err != nil {
		return q
	}
	if n <= 0 || n >= len(q.rows) {
		return q.next(q.rows)
	}
	return q.next(q.rows[n:])
}

// Paginate is Offset((page-1)*pageSize) followed by Limit(pageSize); page
// is 1-indexed.
func (q *Query) Paginate(page, pageSize int) *Query {
	return q.Offset((page - 1) * pageSize).Limit(pageSize)
}

// Select projects each row down to the named fields. Fields absent in a
// row are omitted from the projection, not filled with null.
func (q *Query) Select(fields []string) *Query {
	if q.err != nil {
		return q
	}
	out := make([]types.Record, 0, len(q.rows))
	for _, row := range q.rows {
		projected := make(types.Record, len(fields))
		for _, field := range fields {
			if v, ok := row[field]; ok {
				projected[field] = v
			}
		}
		out = append(out, projected)
	}
	return q.next(out)
}

// Distinct de-duplicates rows keyed on the row's textual representation.
// Structurally distinct rows that stringify identically collapse into one.
func (q *Query) Distinct() *Query {
	if q.err != nil {
		return q
	}
	seen := make(map[string]bool, len(q.rows))
	var out []types.Record
	for _, row := range q.rows {
		key := fmt.Sprintf("%v", map[string]any(row))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
	}
	return q.next(out)
}

// Get materializes the current working set.
func (q *Query) Get() ([]types.Record, error) {
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

// First returns the first row of the working set, or nil when empty.
func (q *Query) First() (types.Record, error) {
	if q.err != nil {
		return nil, q.err
	}
	if len(q.rows) == 0 {
		return nil, nil
	}
	return q.rows[0], nil
}

// Last returns the last row of the working set, or nil when empty.
func (q *Query) Last() (types.Record, error) {
	if q.err != nil {
		return nil, q.err
	}
	if len(q.rows) == 0 {
		return nil, nil
	}
	return q.rows[len(q.rows)-1], nil
}

// Count returns the size of the working set.
func (q *Query) Count() (int, error) {
	if q.err != nil {
		return 0, q.err
	}
	return len(q.rows), nil
}

// IsEmpty reports whether the working set has no rows.
func (q *Query) IsEmpty() (bool, error) {
	if q.err != nil {
		return false, q.err
	}
	return len(q.rows) == 0, nil
}

// GroupBy maps each encountered value of field (by its textual
// representation) to the rows sharing it, preserving relative order within
// each group.
func (q *Query) GroupBy(field string) (map[string][]types.Record, error) {
	if q.err != nil {
		return nil, q.err
	}
	groups := make(map[string][]types.Record)
	for _, row := range q.rows {
		key := cast.ToString(row[field])
		groups[key] = append(groups[key], row)
	}
	return groups, nil
}

// CountBy is GroupBy reduced to group sizes.
func (q *Query) CountBy(field string) (map[string]int, error) {
	if q.err != nil {
		return nil, q.err
	}
	counts := make(map[string]int)
	for _, row := range q.rows {
		counts[cast.ToString(row[field])]++
	}
	return counts, nil
}

// containsValue reports membership of needle in a sequence-valued haystack.
// A non-sequence haystack matches nothing.
func containsValue(haystack, needle any) bool {
	rv := reflect.ValueOf(haystack)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if Equal(rv.Index(i).Interface(), needle) {
			return true
		}
	}
	return false
}
