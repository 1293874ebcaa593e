// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/poolsuite-cli/poolsuite/constant"
	"github.com/poolsuite-cli/poolsuite/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "POOLSUITE_CONFIG_PATH"

// ensureDir creates path if needed and returns it.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory: $XDG_CONFIG_HOME/poolsuite on Linux,
// the user profile equivalent elsewhere, or POOLSUITE_CONFIG_PATH when set.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Poolsuite))
}

// Cache resolves the cache directory under the user cache dir.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Poolsuite))
}

// Logs resolves the log directory inside the config directory.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Temp resolves the directory holding player control sockets.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Poolsuite))
}

// Tracks resolves the path of the cached playlist track listings.
func Tracks() string {
	return filepath.Join(Cache(), "tracks.json")
}

// ClientID resolves the path of the cached SoundCloud client id.
func ClientID() string {
	return filepath.Join(Cache(), "client_id.json")
}
