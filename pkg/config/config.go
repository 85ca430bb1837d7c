// Package config loads marionette's layered configuration: embedded
// defaults, then the user file at ConfigFile(), then MARIONETTE_*
// environment variables. Later layers win key by key.
package config

import (
	_ "embed"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/marionette/pkg/errors"
	"github.com/arthur-debert/marionette/pkg/paths"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// envPrefix selects the environment variables that feed the top layer.
// MARIONETTE_IMAGES_MAX_BYTES=1024 maps to images.max_bytes.
const envPrefix = "MARIONETTE_"

// Config is the resolved application configuration
type Config struct {
	Logging LoggingConfig
	Images  ImagesConfig
	Events  EventsConfig
	Output  OutputConfig
}

type LoggingConfig struct {
	Verbosity int
}

type ImagesConfig struct {
	MaxBytes     int64
	FetchTimeout time.Duration
	UserAgent    string
	ErrorBuffer  int
}

type EventsConfig struct {
	Buffer int
}

type OutputConfig struct {
	Format string
}

// Load resolves the configuration from all layers. A missing user file is
// not an error; a malformed one is.
func Load() (*Config, error) {
	return LoadFrom(paths.ConfigFile())
}

// LoadFrom is Load with an explicit user configuration file path
func LoadFrom(userFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading built-in defaults")
	}

	if _, err := os.Stat(userFile); err == nil {
		if err := k.Load(file.Provider(userFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "loading user config %s", userFile)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading environment overrides")
	}

	return fromKoanf(k), nil
}

// envToKey maps MARIONETTE_IMAGES_MAX_BYTES to images.max_bytes. The first
// underscore separates the section; the rest stay joined as the key name.
func envToKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	section, key, found := strings.Cut(s, "_")
	if !found {
		return s
	}
	return section + "." + key
}

func fromKoanf(k *koanf.Koanf) *Config {
	return &Config{
		Logging: LoggingConfig{
			Verbosity: k.Int("logging.verbosity"),
		},
		Images: ImagesConfig{
			MaxBytes:     k.Int64("images.max_bytes"),
			FetchTimeout: time.Duration(k.Int("images.fetch_timeout")) * time.Second,
			UserAgent:    k.String("images.user_agent"),
			ErrorBuffer:  k.Int("images.error_buffer"),
		},
		Events: EventsConfig{
			Buffer: k.Int("events.buffer"),
		},
		Output: OutputConfig{
			Format: k.String("output.format"),
		},
	}
}

// rawBytesProvider implements koanf's provider interface for embedded bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}
