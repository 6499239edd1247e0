// Shared helpers for larder CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// parseWhere converts key=value arguments into an equality filter. Values
// are parsed as JSON when possible (numbers, booleans, null) and fall back
// to raw strings.
func parseWhere(args []string) (types.Record, error) {
	if len(args) == 0 {
		return nil, nil
	}
	where := make(types.Record, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid filter %q (expected key=value)", arg)
		}
		where[parts[0]] = parseValue(parts[1])
	}
	return where, nil
}

// parseValue interprets a flag value as JSON, falling back to the raw
// string.
func parseValue(s string) any {
	var parsed any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return s
	}
	return parsed
}

// parseRecord unmarshals a JSON object argument into a record.
func parseRecord(arg string) (types.Record, error) {
	var rec types.Record
	if err := json.Unmarshal([]byte(arg), &rec); err != nil {
		return nil, fmt.Errorf("invalid record JSON: %w", err)
	}
	return rec, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
