package jsoncache

import (
	"time"

	"github.com/phildavis/go-jsonmemoize/logger"
)

// config holds the resolved configuration for a Store. It is fixed at Open
// time and does not change for the life of the session.
type config struct {
	maxSize     int
	maxAge      time.Duration
	forceUpdate bool
	clock       Clock
	logger      logger.Logger
}

// Option configures a Store at Open time.
type Option func(*config)

func defaultConfig() config {
	return config{
		clock:  SystemClock,
		logger: logger.NewConsoleLogger(logger.LevelNone),
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxSize sets the maximum number of entries retained by Close.
// 0 (the default) means the entry count is unbounded; a negative value
// retains nothing.
func WithMaxSize(n int) Option {
	return func(c *config) { c.maxSize = n }
}

// WithMaxAge sets the age beyond which Close discards an entry and Contains
// reports it stale. 0 (the default) means entries never expire.
func WithMaxAge(d time.Duration) Option {
	return func(c *config) { c.maxAge = d }
}

// WithForceUpdate makes Contains report false for every key regardless of
// age, so callers using the store-if-absent pattern recompute everything.
func WithForceUpdate(force bool) Option {
	return func(c *config) { c.forceUpdate = force }
}

// WithClock sets the time source used for storage timestamps and freshness
// checks. Defaults to SystemClock.
func WithClock(clock Clock) Option {
	return func(c *config) { c.clock = clock }
}

// WithLogger sets the logger for diagnostic events. Defaults to a console
// logger that logs nothing.
func WithLogger(log logger.Logger) Option {
	return func(c *config) { c.logger = log }
}
