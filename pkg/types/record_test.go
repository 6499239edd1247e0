package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordClone(t *testing.T) {
	original := Record{
		"id":   int64(1),
		"name": "ada",
		"tags": []any{"math", "engines"},
		"address": map[string]any{
			"city": "london",
		},
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	// Mutating the clone, nested containers included, must not leak back.
	clone["name"] = "grace"
	clone["tags"].([]any)[0] = "navy"
	clone["address"].(map[string]any)["city"] = "arlington"

	assert.Equal(t, "ada", original["name"])
	assert.Equal(t, "math", original["tags"].([]any)[0])
	assert.Equal(t, "london", original["address"].(map[string]any)["city"])
}

func TestRecordCloneNil(t *testing.T) {
	var r Record
	assert.Nil(t, r.Clone())
}

func TestRecordID(t *testing.T) {
	tests := []struct {
		name   string
		rec    Record
		wantID int64
		wantOK bool
	}{
		{name: "int64 id", rec: Record{"id": int64(7)}, wantID: 7, wantOK: true},
		{name: "int id", rec: Record{"id": 7}, wantID: 7, wantOK: true},
		{name: "float64 id from JSON", rec: Record{"id": float64(7)}, wantID: 7, wantOK: true},
		{name: "absent id", rec: Record{"name": "x"}, wantOK: false},
		{name: "null id", rec: Record{"id": nil}, wantOK: false},
		{name: "text id", rec: Record{"id": "7"}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := tt.rec.ID()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestCloneRecords(t *testing.T) {
	rows := []Record{{"id": int64(1)}, {"id": int64(2)}}
	clone := CloneRecords(rows)
	require.Equal(t, rows, clone)

	clone[0]["id"] = int64(99)
	assert.Equal(t, int64(1), rows[0]["id"])
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "file backend", cfg: Config{Backend: BackendFile}},
		{name: "sqlite backend", cfg: Config{Backend: BackendSQLite}},
		{name: "memory backend", cfg: Config{Backend: BackendMemory}},
		{name: "empty backend", cfg: Config{}, wantErr: ErrBackendEmpty},
		{name: "unknown backend", cfg: Config{Backend: "redis"}, wantErr: ErrBackendUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
