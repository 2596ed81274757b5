package memoize

import (
	"context"
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/phildavis/go-jsonmemoize/appdir"
	"github.com/phildavis/go-jsonmemoize/jsoncache"
	"github.com/phildavis/go-jsonmemoize/logger"
)

// Config holds the default settings a Memoizer applies to every call.
// Per-call Options override individual fields; the Config itself is never
// mutated after New.
type Config struct {
	// MaxAge is the age after which a cached result must be recomputed.
	// 0 means results never expire.
	MaxAge time.Duration
	// MaxSize is the maximum number of results retained per cache file.
	// 0 means the count is unbounded.
	MaxSize int
	// ForceUpdate recomputes every call regardless of cached state.
	ForceUpdate bool
	// AppName scopes the cache folder to an application when CacheFolder
	// is not set.
	AppName string
	// CacheFolder is an explicit folder for cache files. Wins over AppName.
	CacheFolder string
	// CacheFileName overrides the default "<name>_cache" file name.
	CacheFileName string
	// Logger receives advisory diagnostics. Defaults to a console logger.
	Logger logger.Logger
	// Clock is the time source for storage timestamps. Defaults to
	// jsoncache.SystemClock.
	Clock jsoncache.Clock
}

// Memoizer caches function results in one JSON file per function.
type Memoizer struct {
	defaults Config
}

// New returns a Memoizer with the given defaults.
func New(defaults Config) *Memoizer {
	if defaults.Logger == nil {
		defaults.Logger = logger.NewConsoleLogger()
	}
	if defaults.Clock == nil {
		defaults.Clock = jsoncache.SystemClock
	}
	return &Memoizer{defaults: defaults}
}

// Invoker produces the value for a cache miss.
type Invoker[T any] func(ctx context.Context) (T, error)

// Do returns the cached result for key from the function's cache file, or
// invokes the function and caches its result. The whole call is one cache
// session: the file is read up front and pruned and written back before Do
// returns, on every exit path. name identifies the function and selects the
// cache file; key identifies the call (see [Memoizer.CallString]).
//
// A result produced by invoke must survive JSON encoding; on a later call
// it is decoded back into T, so unexported fields are lost and the usual
// encoding/json rules apply.
func Do[T any](ctx context.Context, m *Memoizer, name, key string, invoke Invoker[T], opts ...Option) (T, error) {
	cfg := m.defaults
	for _, opt := range opts {
		opt(&cfg)
	}

	var zero T
	path, err := cfg.cacheFilePath(name)
	if err != nil {
		return zero, err
	}

	var result T
	err = jsoncache.With(path, func(s *jsoncache.Store) error {
		if !s.Contains(key) {
			produced, err := invoke(ctx)
			if err != nil {
				return err
			}
			storable, err := toStorable(produced)
			if err != nil {
				return err
			}
			s.Store(key, storable)
			cfg.Logger.Info("%s cached", key)
		}
		raw, err := s.Retrieve(key)
		if err != nil {
			return err
		}
		result, err = fromStored[T](raw)
		return err
	},
		jsoncache.WithMaxAge(cfg.MaxAge),
		jsoncache.WithMaxSize(cfg.MaxSize),
		jsoncache.WithForceUpdate(cfg.ForceUpdate),
		jsoncache.WithClock(cfg.Clock),
		jsoncache.WithLogger(cfg.Logger),
	)
	if err != nil {
		return zero, err
	}
	return result, nil
}

// Do is the untyped variant of the package-level [Do].
func (m *Memoizer) Do(ctx context.Context, name, key string, invoke Invoker[any], opts ...Option) (any, error) {
	return Do[any](ctx, m, name, key, invoke, opts...)
}

func (c Config) cacheFilePath(name string) (string, error) {
	folder, err := appdir.Resolve(c.CacheFolder, c.AppName, c.Logger)
	if err != nil {
		return "", err
	}
	fileName := c.CacheFileName
	if fileName == "" {
		fileName = name + "_cache"
	}
	return filepath.Join(folder, fileName), nil
}

// toStorable normalizes a produced value into the JSON value domain by
// round-tripping it through encoding/json, so structs become string-keyed
// maps before they reach the store.
func toStorable(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(jsoncache.ErrNotSerializable, "%T: %v", v, err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrapf(jsoncache.ErrNotSerializable, "%T: %v", v, err)
	}
	return out, nil
}

// fromStored converts a cached value back to T. A direct type assertion
// covers values of the JSON domain; everything else is decoded through
// encoding/json.
func fromStored[T any](val any) (T, error) {
	if typed, ok := val.(T); ok {
		return typed, nil
	}
	var result T
	data, err := json.Marshal(val)
	if err != nil {
		return result, errors.Wrapf(err, "encoding cached value of type %T", val)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, errors.Wrapf(err, "cannot convert cached value of type %T to %T", val, result)
	}
	return result, nil
}
