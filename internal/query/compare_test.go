package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{name: "both null", a: nil, b: nil, want: true},
		{name: "null vs value", a: nil, b: 1, want: false},
		{name: "same ints", a: 30, b: 30, want: true},
		{name: "int vs float64 same value", a: int64(30), b: float64(30), want: true},
		{name: "different numbers", a: 30, b: 31, want: false},
		{name: "number vs numeric text", a: 30, b: "30", want: false},
		{name: "same text", a: "ada", b: "ada", want: true},
		{name: "text case sensitive", a: "ada", b: "Ada", want: false},
		{name: "bools", a: true, b: true, want: true},
		{name: "bool vs number", a: true, b: 1, want: false},
		{name: "nested maps", a: map[string]any{"x": 1}, b: map[string]any{"x": 1}, want: true},
		{name: "slices", a: []any{1, 2}, b: []any{1, 2}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestCompare(t *testing.T) {
	early := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b any
		want int
	}{
		{name: "null equals null", a: nil, b: nil, want: 0},
		{name: "null before number", a: nil, b: 0, want: -1},
		{name: "number after null", a: 0, b: nil, want: 1},
		{name: "numeric less", a: 1, b: 2, want: -1},
		{name: "numeric greater", a: 2.5, b: 2, want: 1},
		{name: "numeric equal across kinds", a: int64(2), b: float64(2), want: 0},
		{name: "text lexicographic", a: "apple", b: "banana", want: -1},
		{name: "time chronological", a: early, b: late, want: -1},
		{name: "time equal", a: early, b: early, want: 0},
		// Mixed types degrade to textual comparison, never an error.
		{name: "number vs text falls back", a: 100, b: "20", want: -1},
		{name: "bool vs text falls back", a: true, b: "abc", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}
