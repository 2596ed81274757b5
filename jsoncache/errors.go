package jsoncache

import "github.com/cockroachdb/errors"

// Store errors. Callers should test with errors.Is.
var (
	// ErrCorruptCacheFile means the backing file exists, is non-empty, and
	// could not be parsed. No partial load is attempted.
	ErrCorruptCacheFile = errors.New("cache file is corrupt")

	// ErrKeyNotFound means Retrieve was called for a key with no entry.
	ErrKeyNotFound = errors.New("key not found in cache")

	// ErrNotSerializable means a stored value falls outside the JSON value
	// domain and could not be encoded at Close time.
	ErrNotSerializable = errors.New("value is not JSON-serializable")

	// ErrPathUnwritable means the parent directory could not be created or
	// the backing file could not be written.
	ErrPathUnwritable = errors.New("cache path is not writable")
)
