package memoize

import (
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	str2duration "github.com/xhit/go-str2duration/v2"
)

// FromEnv builds a Config from environment variables under the given
// prefix: <PREFIX>_MAX_AGE (a duration string such as "90m" or "1d12h"),
// <PREFIX>_MAX_SIZE, <PREFIX>_FORCE_UPDATE, <PREFIX>_APP_NAME and
// <PREFIX>_CACHE_FOLDER. Unset variables leave the zero value in place.
func FromEnv(prefix string) (Config, error) {
	var cfg Config
	if v := os.Getenv(prefix + "_MAX_AGE"); v != "" {
		d, err := str2duration.ParseDuration(v)
		if err != nil {
			return cfg, errors.Wrapf(err, "parsing %s_MAX_AGE", prefix)
		}
		cfg.MaxAge = d
	}
	if v := os.Getenv(prefix + "_MAX_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.Wrapf(err, "parsing %s_MAX_SIZE", prefix)
		}
		if n < 0 {
			return cfg, errors.Newf("parsing %s_MAX_SIZE: must not be negative, got %d", prefix, n)
		}
		cfg.MaxSize = n
	}
	if v := os.Getenv(prefix + "_FORCE_UPDATE"); v != "" {
		force, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, errors.Wrapf(err, "parsing %s_FORCE_UPDATE", prefix)
		}
		cfg.ForceUpdate = force
	}
	cfg.AppName = os.Getenv(prefix + "_APP_NAME")
	cfg.CacheFolder = os.Getenv(prefix + "_CACHE_FOLDER")
	return cfg, nil
}
