// Package config loads reactorsim settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/reactorsim/config.toml (or
// ~/.config/reactorsim/config.toml). A missing file is not an error: every
// setting has a default, and command-line flags override the file.
//
//	log_level = "debug"
//
//	[render]
//	scale = 2.0
//	formats = ["svg", "png"]
//
//	[serve]
//	addr = ":8080"
//	frame_cache_size = 512
//
//	[cache]
//	disabled = false
//	redis_addr = "localhost:6379"
//	ttl = "24h"
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/reactorsim/pkg/cache"
	"github.com/matzehuels/reactorsim/pkg/errors"
	"github.com/matzehuels/reactorsim/pkg/pipeline"
)

// AppName names the config and cache directories.
const AppName = "reactorsim"

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// DefaultAddr is the default listen address for the HTTP server.
const DefaultAddr = ":8080"

// Config holds every file-configurable setting.
type Config struct {
	LogLevel string       `toml:"log_level"`
	Render   RenderConfig `toml:"render"`
	Serve    ServeConfig  `toml:"serve"`
	Cache    CacheConfig  `toml:"cache"`
}

// RenderConfig holds defaults for the render and animate commands.
type RenderConfig struct {
	Scale   float64  `toml:"scale"`
	Formats []string `toml:"formats"`
}

// ServeConfig holds HTTP server settings.
type ServeConfig struct {
	Addr           string `toml:"addr"`
	FrameCacheSize int    `toml:"frame_cache_size"`
}

// CacheConfig selects and tunes the artifact cache.
type CacheConfig struct {
	// Dir overrides the file cache directory.
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
	// RedisAddr switches the server to a shared Redis cache when set.
	RedisAddr string        `toml:"redis_addr"`
	TTL       time.Duration `toml:"ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Render: RenderConfig{
			Scale:   pipeline.DefaultScale,
			Formats: []string{pipeline.FormatSVG},
		},
		Serve: ServeConfig{
			Addr:           DefaultAddr,
			FrameCacheSize: cache.DefaultLRUSize,
		},
		Cache: CacheConfig{
			TTL: cache.DefaultTTL,
		},
	}
}

// DefaultPath returns the config file location following the XDG base
// directory convention.
func DefaultPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// CacheDir returns the file cache directory following the XDG base directory
// convention.
func CacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}

// Load reads the config at path, or at DefaultPath when path is empty.
// Values missing from the file keep their defaults. A missing file at the
// default location yields Default(); an explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log_level")
	}
	if err := errors.ValidateScale(c.Render.Scale); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.scale")
	}
	if err := errors.ValidateFormats(c.Render.Formats, pipeline.ValidFormats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.formats")
	}
	if c.Serve.FrameCacheSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "serve.frame_cache_size cannot be negative")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
