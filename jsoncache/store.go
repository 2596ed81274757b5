package jsoncache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
)

// entry is one cached value plus the POSIX UTC timestamp at which it was
// stored. On disk it is the two-element array [value, storedAt].
type entry struct {
	value    any
	storedAt float64
}

// Store is a session-scoped mapping from opaque string keys to timestamped
// values, backed by a single JSON file. A Store is created by Open, mutated
// by Store/Retrieve calls, and written back by Close. Limits (maxAge,
// maxSize) are enforced only at Close: the live mapping may transiently
// exceed them, and only the persisted file is guaranteed compliant.
//
// A Store is not safe for concurrent use; the design assumes one session
// owns the backing file from Open through Close.
type Store struct {
	path     string
	cfg      config
	entries  map[string]entry
	once     sync.Once
	closeErr error
}

// Open loads the backing file at path into a new Store. A missing or empty
// file yields an empty store and does not create the file; the file is only
// written by Close. A non-empty file that fails to parse is fatal and
// returns ErrCorruptCacheFile.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:    path,
		cfg:     applyOptions(opts),
		entries: make(map[string]entry),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrapf(err, "reading cache file %s", path)
	}
	if len(data) == 0 {
		return s, nil
	}

	var raw map[string][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(ErrCorruptCacheFile, "%s: %v", path, err)
	}
	for key, pair := range raw {
		if len(pair) != 2 {
			return nil, errors.Wrapf(ErrCorruptCacheFile, "%s: entry %q has %d elements, want 2", path, key, len(pair))
		}
		var value any
		if err := json.Unmarshal(pair[0], &value); err != nil {
			return nil, errors.Wrapf(ErrCorruptCacheFile, "%s: entry %q value: %v", path, key, err)
		}
		var storedAt float64
		if err := json.Unmarshal(pair[1], &storedAt); err != nil {
			return nil, errors.Wrapf(ErrCorruptCacheFile, "%s: entry %q timestamp: %v", path, key, err)
		}
		s.entries[key] = entry{value: value, storedAt: storedAt}
	}
	s.cfg.logger.Debug("loaded %d cached entries from %s", len(s.entries), path)
	return s, nil
}

// Contains reports whether key is present and current. An expired key
// reports false but stays in the mapping until Close, so Retrieve on it
// still works.
func (s *Store) Contains(key string) bool {
	e, ok := s.entries[key]
	if !ok {
		return false
	}
	return s.isCurrent(e)
}

// Store inserts or overwrites the entry for key, timestamped now. Values
// outside the JSON value domain are accepted here and rejected at Close.
func (s *Store) Store(key string, value any) {
	s.entries[key] = entry{value: value, storedAt: Timestamp(s.cfg.clock.Now())}
}

// Retrieve returns the stored value for key, without checking freshness;
// callers that care about freshness should guard with Contains first.
// Returns ErrKeyNotFound if the key has no entry.
func (s *Store) Retrieve(key string) (any, error) {
	e, ok := s.entries[key]
	if !ok {
		return nil, errors.Wrapf(ErrKeyNotFound, "%q", key)
	}
	return e.value, nil
}

// Len returns the number of entries in the mapping, stale ones included.
func (s *Store) Len() int {
	return len(s.entries)
}

// Close purges expired entries, culls the mapping down to maxSize and
// writes the result back to the backing file, creating parent directories
// as needed. It runs at most once; later calls return the first result.
//
// Ordering matters: the age purge runs before the size cull, so expired
// entries never count against maxSize. The cull removes the globally oldest
// entries by stored timestamp, breaking ties by lexical key order.
//
// On a persist failure the mapping is left intact and consultable, but the
// file on disk is not updated.
func (s *Store) Close() error {
	s.once.Do(func() {
		s.purgeExpired()
		s.cullToSize()
		s.closeErr = s.writeFile()
	})
	return s.closeErr
}

// With opens a store at path, runs fn against it, and guarantees Close runs
// exactly once on every exit path, including a panic in fn. The first error
// wins: an fn error is returned over a Close error.
func With(path string, fn func(*Store) error, opts ...Option) (err error) {
	s, err := Open(path, opts...)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := s.Close()
		if err == nil {
			err = closeErr
		}
	}()
	return fn(s)
}

func (s *Store) isCurrent(e entry) bool {
	if s.cfg.forceUpdate {
		return false
	}
	if s.cfg.maxAge == 0 {
		return true
	}
	return s.age(e) < s.cfg.maxAge.Seconds()
}

// age returns the age of e in fractional seconds.
func (s *Store) age(e entry) float64 {
	return Timestamp(s.cfg.clock.Now()) - e.storedAt
}

func (s *Store) purgeExpired() {
	if s.cfg.maxAge == 0 {
		return
	}
	maxAge := s.cfg.maxAge.Seconds()
	var purged int
	for key, e := range s.entries {
		if s.age(e) > maxAge {
			delete(s.entries, key)
			purged++
		}
	}
	if purged > 0 {
		s.cfg.logger.Debug("purged %d expired entries from %s", purged, s.path)
	}
}

func (s *Store) cullToSize() {
	if s.cfg.maxSize == 0 || len(s.entries) <= s.cfg.maxSize {
		return
	}
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	// Oldest first; lexical key order breaks timestamp ties so the cull is
	// deterministic.
	sort.Slice(keys, func(i, j int) bool {
		a, b := s.entries[keys[i]], s.entries[keys[j]]
		if a.storedAt != b.storedAt {
			return a.storedAt < b.storedAt
		}
		return keys[i] < keys[j]
	})
	// A negative maxSize can push the excess past the entry count; clamp so
	// the cull empties the mapping instead of slicing out of range.
	excess := len(s.entries) - s.cfg.maxSize
	if excess > len(keys) {
		excess = len(keys)
	}
	for _, key := range keys[:excess] {
		delete(s.entries, key)
	}
	s.cfg.logger.Debug("culled %d entries from %s to honor max size %d", excess, s.path, s.cfg.maxSize)
}

func (s *Store) writeFile() error {
	out := make(map[string][2]any, len(s.entries))
	for key, e := range s.entries {
		if err := validateValue(e.value); err != nil {
			return errors.Wrapf(err, "entry %q", key)
		}
		out[key] = [2]any{e.value, e.storedAt}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return errors.Wrapf(ErrNotSerializable, "encoding %s: %v", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return errors.Wrapf(ErrPathUnwritable, "creating %s: %v", dir, err)
	}

	// Write to a temporary file first, then rename so the previous snapshot
	// survives a failed write.
	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return errors.Wrapf(ErrPathUnwritable, "writing %s: %v", tempPath, err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrapf(ErrPathUnwritable, "renaming %s: %v", tempPath, err)
	}
	s.cfg.logger.Debug("persisted %d entries to %s", len(s.entries), s.path)
	return nil
}
