// Package types defines the Record type, the Storage capability interface,
// backend configuration, and the standard errors for the larder record store.
package types

// IDField is the conventional surrogate identifier field. Every record in a
// table is expected to carry it; the convention is not enforced.
const IDField = "id"

// Record is one flat field-to-value mapping within a table. Values hold the
// JSON scalar and container types: nil, bool, numbers, string, []any, and
// nested map[string]any.
type Record map[string]any

// Clone returns a deep copy of the record. Mutating the copy never affects
// the original, including nested maps and slices.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

// ID returns the record's identifier as int64. The second return is false
// when the field is absent, nil, or not numeric. Both int64 (fresh inserts)
// and float64 (JSON round-trips) are accepted.
func (r Record) ID() (int64, bool) {
	switch v := r[IDField].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// CloneRecords deep-copies a slice of records.
func CloneRecords(rows []Record) []Record {
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = cloneValue(e)
		}
		return out
	case Record:
		return map[string]any(val.Clone())
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return val
	}
}

// Dataset is the whole-database unit of persistence: every table, every
// auto-increment counter, a last-modified timestamp, and the format version.
type Dataset struct {
	Tables                map[string][]Record `json:"tables"`
	AutoIncrementCounters map[string]int64    `json:"autoIncrementCounters"`
	LastModified          string              `json:"lastModified"`
	Version               string              `json:"version"`
}

// FormatVersion is the dataset format version written on every persist.
const FormatVersion = "1.0.0"
