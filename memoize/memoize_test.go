package memoize

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phildavis/go-jsonmemoize/logger"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func newTestMemoizer(t *testing.T, cfg Config) (*Memoizer, string) {
	t.Helper()
	if cfg.CacheFolder == "" {
		cfg.CacheFolder = t.TempDir()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewTestLogger()
	}
	return New(cfg), cfg.CacheFolder
}

func TestDoCachesResult(t *testing.T) {
	m, dir := newTestMemoizer(t, Config{})
	ctx := context.Background()

	calls := 0
	invoke := func(ctx context.Context) (string, error) {
		calls++
		return "result1", nil
	}

	got, err := Do(ctx, m, "fetch", "('a',), {}", invoke)
	require.NoError(t, err)
	assert.Equal(t, "result1", got)
	assert.Equal(t, 1, calls)

	got, err = Do(ctx, m, "fetch", "('a',), {}", invoke)
	require.NoError(t, err)
	assert.Equal(t, "result1", got)
	assert.Equal(t, 1, calls, "second call must come from the cache")

	// One file per function, named for it.
	_, statErr := os.Stat(filepath.Join(dir, "fetch_cache"))
	assert.NoError(t, statErr)
}

func TestDoDistinctKeys(t *testing.T) {
	m, _ := newTestMemoizer(t, Config{})
	ctx := context.Background()

	calls := 0
	invoke := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	first, err := Do(ctx, m, "count", "('a',), {}", invoke)
	require.NoError(t, err)
	second, err := Do(ctx, m, "count", "('b',), {}", invoke)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 2, calls)
}

func TestDoStructResultSurvivesReload(t *testing.T) {
	type forecast struct {
		City string  `json:"city"`
		Temp float64 `json:"temp"`
	}

	dir := t.TempDir()
	ctx := context.Background()
	want := forecast{City: "Oslo", Temp: -3.5}

	calls := 0
	invoke := func(ctx context.Context) (forecast, error) {
		calls++
		return want, nil
	}

	m1, _ := newTestMemoizer(t, Config{CacheFolder: dir})
	got, err := Do(ctx, m1, "weather", "('oslo',), {}", invoke)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Fresh memoizer, fresh process as far as the cache is concerned.
	m2, _ := newTestMemoizer(t, Config{CacheFolder: dir})
	got, err = Do(ctx, m2, "weather", "('oslo',), {}", invoke)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, calls)
}

func TestDoForceUpdate(t *testing.T) {
	m, _ := newTestMemoizer(t, Config{})
	ctx := context.Background()

	calls := 0
	invoke := func(ctx context.Context) (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := Do(ctx, m, "fetch", "k", invoke)
	require.NoError(t, err)
	_, err = Do(ctx, m, "fetch", "k", invoke, WithForceUpdate(true))
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "force update must bypass the cached result")
}

func TestDoMaxAgeRecomputes(t *testing.T) {
	clock := newFakeClock()
	m, _ := newTestMemoizer(t, Config{MaxAge: time.Minute, Clock: clock})
	ctx := context.Background()

	calls := 0
	invoke := func(ctx context.Context) (string, error) {
		calls++
		return "v", nil
	}

	_, err := Do(ctx, m, "fetch", "k", invoke)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	clock.advance(30 * time.Second)
	_, err = Do(ctx, m, "fetch", "k", invoke)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "still current")

	clock.advance(45 * time.Second)
	_, err = Do(ctx, m, "fetch", "k", invoke)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "expired result must be recomputed")
}

func TestDoInvokeErrorNotCached(t *testing.T) {
	m, _ := newTestMemoizer(t, Config{})
	ctx := context.Background()
	boom := errors.New("upstream down")

	calls := 0
	invoke := func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", boom
		}
		return "recovered", nil
	}

	_, err := Do(ctx, m, "fetch", "k", invoke)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	got, err := Do(ctx, m, "fetch", "k", invoke)
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
	assert.Equal(t, 2, calls)
}

func TestDoCacheFileNameOverride(t *testing.T) {
	m, dir := newTestMemoizer(t, Config{})
	ctx := context.Background()

	_, err := Do(ctx, m, "fetch", "k", func(ctx context.Context) (string, error) {
		return "v", nil
	}, WithCacheFileName("shared_cache"))
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "shared_cache"))
	assert.NoError(t, statErr)
}

func TestDoMaxSizeCullsAcrossSessions(t *testing.T) {
	clock := newFakeClock()
	m, _ := newTestMemoizer(t, Config{MaxSize: 2, Clock: clock})
	ctx := context.Background()

	invoke := func(ctx context.Context) (string, error) {
		return "v", nil
	}
	for _, key := range []string{"first", "second", "third"} {
		_, err := Do(ctx, m, "fetch", key, invoke)
		require.NoError(t, err)
		clock.advance(time.Second)
	}

	// The oldest key was culled when its session closed, so it recomputes.
	calls := 0
	_, err := Do(ctx, m, "fetch", "first", func(ctx context.Context) (string, error) {
		calls++
		return "v", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestMemoizerDoUntyped(t *testing.T) {
	m, _ := newTestMemoizer(t, Config{})
	ctx := context.Background()

	got, err := m.Do(ctx, "fetch", "k", func(ctx context.Context) (any, error) {
		return map[string]any{"answer": 42.0}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"answer": 42.0}, got)
}

func TestDoLogsCachedKey(t *testing.T) {
	log := logger.NewTestLogger()
	m, _ := newTestMemoizer(t, Config{Logger: log})
	ctx := context.Background()

	_, err := Do(ctx, m, "fetch", "('a',), {}", func(ctx context.Context) (string, error) {
		return "v", nil
	})
	require.NoError(t, err)

	var cached bool
	for _, entry := range log.Logs {
		if entry.Severity == "INFO" && entry.Message == "%s cached" {
			cached = true
			assert.Equal(t, []interface{}{"('a',), {}"}, entry.Arguments)
		}
	}
	assert.True(t, cached, "a fresh result should be logged as cached")
}
