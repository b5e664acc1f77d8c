package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/featureviewer/pkg/cache"
	"github.com/matzehuels/featureviewer/pkg/config"
	"github.com/matzehuels/featureviewer/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before every command from --config or the default
	// location.
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration file into c.Config.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache opens the backend selected by the configuration. An unreachable
// redis server degrades to the file cache with a warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache || cfg.Backend == config.CacheNone {
		return cache.NewNullCache(), nil
	}

	if cfg.Backend == config.CacheRedis {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.Password,
			DB:       cfg.RedisDB,
			Prefix:   config.AppName + ":",
		})
		if err == nil {
			c.Logger.Debug("using redis cache", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
			return cache.WithTTL(rc, cfg.TTL.Duration), nil
		}
		c.Logger.Warn("redis cache unavailable, falling back to file cache", "addr", cfg.RedisAddr, "err", err)
	}

	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", dir, err)
	}
	return cache.WithTTL(fc, cfg.TTL.Duration), nil
}

// cacheDir returns the configured cache directory or the XDG default
// (~/.cache/featureviewer/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cache.DefaultDir(config.AppName)
}

// =============================================================================
// Options Helpers
// =============================================================================

// renderDefaults builds pipeline options from the [render] section.
func (c *CLI) renderDefaults() pipeline.Options {
	r := c.Config.Render
	opts := pipeline.Options{
		Formats:    r.Formats,
		Width:      r.Width,
		GlyphWidth: r.GlyphWidth,
	}
	if r.InlineLabels != nil {
		opts.InlineLabels = *r.InlineLabels
	}
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, strings.ToLower(f))
		}
	}
	return out
}

// outputPath returns the file for one record and format. Without an output
// directory the file is written next to the input.
func outputPath(outDir, input, name, format string) string {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, sanitizeName(name)+"."+format)
}

// sanitizeName makes a record name safe to use as a file name.
func sanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "record"
	}
	return name
}
