// Package config loads the optional featureviewer configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/featureviewer/config.toml
// (or ~/.config/featureviewer/config.toml) unless a path is given:
//
//	[render]
//	width = 10.0
//	formats = ["svg", "html"]
//	glyph_width = 0.3
//	inline_labels = true
//
//	[cache]
//	backend = "redis"   # file, redis or none
//	redis_addr = "localhost:6379"
//	redis_db = 0
//	ttl = "72h"
//
//	[serve]
//	addr = ":8080"
//
// Every field is optional; command-line flags override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/featureviewer/pkg/errors"
)

// AppName names the configuration and cache directories.
const AppName = "featureviewer"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the parsed configuration file.
type Config struct {
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
	Serve  Serve  `toml:"serve"`
}

// Render holds render defaults.
type Render struct {
	Width        float64  `toml:"width"`
	Formats      []string `toml:"formats"`
	GlyphWidth   float64  `toml:"glyph_width"`
	InlineLabels *bool    `toml:"inline_labels"`
}

// Cache selects and configures the artefact cache.
type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
	Password  string   `toml:"redis_password"`
	TTL       Duration `toml:"ttl"`
}

// Serve configures the serve command.
type Serve struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a Go duration string.
type Duration struct {
	time.Duration
}

// UnmarshalText parses strings such as "90m" or "72h".
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache: Cache{Backend: CacheFile},
		Serve: Serve{Addr: "localhost:8080"},
	}
}

// DefaultPath returns the default configuration file location.
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads path on top of Default. An empty path loads DefaultPath, and a
// missing default file is not an error; a missing explicit file is.
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
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfiguration, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Configuration("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks field values.
func (c Config) Validate() error {
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, c.Cache.Backend) {
		return errors.Configuration("cache backend %q: want %s, %s or %s", c.Cache.Backend, CacheFile, CacheRedis, CacheNone)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return errors.Configuration("cache backend redis requires redis_addr")
	}
	if c.Render.Width < 0 {
		return errors.Configuration("render width must be positive, got %g", c.Render.Width)
	}
	if c.Render.GlyphWidth < 0 {
		return errors.Configuration("glyph width must be positive, got %g", c.Render.GlyphWidth)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.Configuration("cache ttl must not be negative")
	}
	return nil
}

// Write encodes c as TOML to path, creating parent directories.
func Write(c Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
