package types

import "errors"

// Engine lifecycle errors.
var (
	ErrNotInitialized = errors.New("engine is not initialized")
)

// Record operation errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrMissingID = errors.New("model has no assigned id")
)

// Query pipeline errors.
var (
	ErrInvalidOperator = errors.New("invalid comparison operator")
)

// Dataset codec errors. Decode failures during load are absorbed by the
// engine ("corrupt data is treated as missing data"); the sentinel exists
// for callers that decode datasets directly.
var (
	ErrMalformedDataset = errors.New("malformed dataset")
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)
