// Package jsoncache provides a persistent, session-scoped cache backed by a
// single JSON file per cached function.
//
// # Sessions
//
// A [Store] lives for exactly one session: [Open] loads the backing file
// (missing or empty means an empty cache), the caller stores and retrieves
// entries, and [Store.Close] prunes and writes the mapping back. [With]
// wraps the whole cycle and guarantees Close runs on every exit path:
//
//	err := jsoncache.With(path, func(s *jsoncache.Store) error {
//	    if !s.Contains(key) {
//	        s.Store(key, compute())
//	    }
//	    val, err := s.Retrieve(key)
//	    ...
//	}, jsoncache.WithMaxAge(time.Hour), jsoncache.WithMaxSize(100))
//
// # Freshness versus presence
//
// [Store.Contains] answers "is this entry present and current": an entry is
// current unless force-update mode is on or its age reaches the configured
// max age. [Store.Retrieve] deliberately skips the freshness check, so a
// stale entry can still be read until Close removes it. This split keeps
// the conventional store-if-absent pattern cheap: Contains is the guard,
// Retrieve is the read.
//
// # Eviction at Close
//
// Limits are enforced only when the session ends, in a fixed order: entries
// older than max age are purged first, then the oldest remaining entries
// are culled until the count fits max size (lexical key order breaks
// timestamp ties), and finally the mapping is serialized to the backing
// file. Running the purge first means expired entries never push current
// ones out of the size budget. Because nothing is written until a session
// closes cleanly, an aborted session leaves the previous on-disk snapshot
// untouched.
//
// # File format
//
// The backing file is a single JSON object mapping each key to a
// two-element array [value, storedAt], where storedAt is a POSIX UTC
// timestamp in fractional seconds. Values must stay inside the JSON value
// domain (null, booleans, numbers, strings, arrays, string-keyed objects);
// anything else is rejected at Close with [ErrNotSerializable]. Concrete
// container types such as []string or map[string]int are accepted and
// persist as their generic JSON shape, so a value read back in a later
// session arrives as []any or map[string]any.
//
// # Errors
//
// [Open] returns [ErrCorruptCacheFile] for a non-empty file that fails to
// parse, [Store.Retrieve] returns [ErrKeyNotFound] for an absent key, and
// [Store.Close] returns [ErrNotSerializable] or [ErrPathUnwritable] when
// the mapping cannot be persisted. All are testable with errors.Is. There
// are no retries; the session owner decides whether to run a new session.
//
// # Concurrency
//
// A Store is single-threaded by contract. One session owns a backing file
// from Open through Close; overlapping sessions against the same file are
// last-writer-wins with no merge.
package jsoncache
