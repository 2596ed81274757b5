// Package memoize caches function results across process runs, one JSON
// file per function.
//
// # Usage
//
// A [Memoizer] carries default settings; each Do call can override them:
//
//	m := memoize.New(memoize.Config{
//	    AppName: "widgetapp",
//	    MaxAge:  24 * time.Hour,
//	})
//
//	key := m.CallString([]any{city}, nil)
//	forecast, err := memoize.Do(ctx, m, "fetch_forecast", key,
//	    func(ctx context.Context) (Forecast, error) {
//	        return client.Fetch(ctx, city)
//	    })
//
// The first call invokes the function and stores the result in
// ~/.cache/widgetapp/fetch_forecast_cache (platform-dependent, see the
// appdir package); later calls with the same key return the stored result
// until it is older than MaxAge. It is intended to be fast relative to a
// slow API, not relative to an in-process map.
//
// # Keys
//
// [Memoizer.CallString] derives a key from positional and named arguments
// by rendering each to its string form. Two calls are "the same" exactly
// when their rendered keys are equal, so arguments whose string form is
// unstable between runs (pointers, handles, anything rendering like
// "<Client 0xc000123456>") make poor key material; CallString logs an
// advisory when it spots one. Callers with better knowledge of their
// arguments can pass any stable string instead.
//
// # Values
//
// Results are persisted as JSON, so a cached type must survive
// encoding/json: exported fields only, json tags respected. On a cache hit
// the stored JSON is decoded back into the requested type, whether the hit
// comes from the same process or a later run.
//
// # Configuration
//
// Defaults can also come from the environment via [FromEnv]:
//
//	cfg, err := memoize.FromEnv("WIDGETAPP")
//
// reads WIDGETAPP_MAX_AGE ("90m", "1d12h"), WIDGETAPP_MAX_SIZE,
// WIDGETAPP_FORCE_UPDATE, WIDGETAPP_APP_NAME and WIDGETAPP_CACHE_FOLDER.
package memoize
