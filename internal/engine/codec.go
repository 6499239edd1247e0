package engine

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// encodeDataset serializes the dataset to the JSON interchange format. The
// output is a single document; the storage backend writes it in one call.
func encodeDataset(ds types.Dataset) (string, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding dataset: %w", err)
	}
	return string(data), nil
}

// decodeDataset parses a persisted dataset document. Malformed input fails
// with ErrMalformedDataset; the engine turns that into an empty dataset.
func decodeDataset(text string) (types.Dataset, error) {
	var ds types.Dataset
	if err := json.Unmarshal([]byte(text), &ds); err != nil {
		return types.Dataset{}, fmt.Errorf("%w: %v", types.ErrMalformedDataset, err)
	}
	if ds.Tables == nil {
		ds.Tables = make(map[string][]types.Record)
	}
	if ds.AutoIncrementCounters == nil {
		ds.AutoIncrementCounters = make(map[string]int64)
	}
	return ds, nil
}
