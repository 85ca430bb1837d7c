package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for marionette
	EnvConfigDir = "MARIONETTE_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for marionette
	EnvCacheDir = "MARIONETTE_CACHE_DIR"
)

// AppDirName is the directory name for marionette-specific files.
// It is not user-configurable; user-facing settings live in pkg/config.
const AppDirName = "marionette"

// ConfigDir returns the directory holding the user configuration file.
// MARIONETTE_CONFIG_DIR takes precedence over the XDG config home.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// CacheDir returns the directory for cached data such as fetched images.
// MARIONETTE_CACHE_DIR takes precedence over the XDG cache home.
func CacheDir() string {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.CacheHome, AppDirName)
}

// ConfigFile returns the path of the user configuration file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "marionette.toml")
}
