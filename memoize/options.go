package memoize

import (
	"time"

	"github.com/phildavis/go-jsonmemoize/jsoncache"
	"github.com/phildavis/go-jsonmemoize/logger"
)

// Option overrides one field of the Memoizer's default Config for a single
// Do call.
type Option func(*Config)

// WithMaxAge sets the age after which a cached result is recomputed.
func WithMaxAge(d time.Duration) Option {
	return func(c *Config) { c.MaxAge = d }
}

// WithMaxSize sets the maximum number of results kept in the cache file.
func WithMaxSize(n int) Option {
	return func(c *Config) { c.MaxSize = n }
}

// WithForceUpdate recomputes the call even when a current result is cached.
func WithForceUpdate(force bool) Option {
	return func(c *Config) { c.ForceUpdate = force }
}

// WithAppName scopes the cache folder to an application.
func WithAppName(name string) Option {
	return func(c *Config) { c.AppName = name }
}

// WithCacheFolder sets an explicit cache folder, winning over the app name.
func WithCacheFolder(folder string) Option {
	return func(c *Config) { c.CacheFolder = folder }
}

// WithCacheFileName overrides the default "<name>_cache" file name.
func WithCacheFileName(name string) Option {
	return func(c *Config) { c.CacheFileName = name }
}

// WithLogger sets the logger receiving advisory diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(c *Config) { c.Logger = log }
}

// WithClock sets the time source used for storage timestamps.
func WithClock(clock jsoncache.Clock) Option {
	return func(c *Config) { c.Clock = clock }
}
