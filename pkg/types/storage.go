package types

// Storage is the capability interface the engine persists through. The
// engine stores one serialized dataset blob per dataset name; backends only
// need to round-trip named text blobs.
type Storage interface {
	// Read returns the stored text for key. A missing key is (_, false, nil),
	// never an error.
	Read(key string) (string, bool, error)

	// Write persists text under key, overwriting any prior value.
	Write(key, text string) error

	// Exists reports whether key has a stored value.
	Exists(key string) (bool, error)

	// Delete removes the stored value if present. A missing key is success.
	Delete(key string) error
}
