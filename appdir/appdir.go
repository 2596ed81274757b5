// Package appdir resolves the on-disk folder a cache file lives in.
package appdir

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/phildavis/go-jsonmemoize/logger"
)

// DefaultFolderName is the shared fallback folder used when neither an
// explicit cache folder nor an application name is provided.
const DefaultFolderName = "jsonmemoize"

// UserCacheDir returns the user-level cache directory for appName,
// e.g. ~/.cache/<appName> on Linux and ~/Library/Caches/<appName> on
// macOS. An empty appName returns the base cache directory.
func UserCacheDir(appName string) (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving user cache directory")
	}
	if appName == "" {
		return base, nil
	}
	return filepath.Join(base, appName), nil
}

// Resolve picks the cache folder for a session. An explicit folder wins;
// otherwise the application-scoped user cache directory is used. With
// neither, Resolve falls back to a shared default location and logs an
// advisory, since unrelated callers caching there risk key collisions.
// The advisory never alters the result.
func Resolve(folder, appName string, log logger.Logger) (string, error) {
	if folder != "" {
		return folder, nil
	}
	if appName != "" {
		return UserCacheDir(appName)
	}
	if log != nil {
		log.Warn("caching in the default folder is not recommended; provide an app name or cache folder to avoid collisions")
	}
	base, err := UserCacheDir("")
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DefaultFolderName), nil
}
