// Package config loads tracktree settings from a TOML file and the
// environment.
//
// Sources are applied in priority order: defaults, the config file,
// TRACKTREE_* environment variables. Command-line flags are applied last by
// the CLI itself.
package config

import (
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/cache"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/layout"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/pipeline"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/store"
)

// Defaults for values that have no natural zero.
const (
	DefaultListen         = ":8080"
	DefaultLogLevel       = "info"
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRecords     = 10000
)

// Config is the full tracktree configuration.
type Config struct {
	Layout layout.Config `toml:"layout"`
	Render RenderConfig  `toml:"render"`
	Cache  CacheConfig   `toml:"cache"`
	Store  StoreConfig   `toml:"store"`
	Server ServerConfig  `toml:"server"`
	Log    LogConfig     `toml:"log"`
}

// RenderConfig holds render defaults used when a command or request does
// not choose its own.
type RenderConfig struct {
	Formats     []string `toml:"formats"`
	Style       string   `toml:"style"`
	Engine      string   `toml:"engine"`
	Interactive bool     `toml:"interactive"`
	Scale       float64  `toml:"scale"`
}

// CacheConfig selects the cache backend. Redis wins when an address is set,
// otherwise the CLI uses the file cache in Dir.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`

	// Scope prefixes server cache keys, one namespace per deployment.
	Scope string            `toml:"scope"`
	Redis cache.RedisConfig `toml:"redis"`
}

// StoreConfig selects the layout store. Without a Mongo URI layouts are
// kept in memory.
type StoreConfig struct {
	Mongo store.MongoConfig `toml:"mongo"`
}

// ServerConfig configures `tracktree serve`.
type ServerConfig struct {
	Listen         string        `toml:"listen"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	MaxRecords     int           `toml:"max_records"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout: layout.DefaultConfig(),
		Render: RenderConfig{
			Formats: []string{pipeline.FormatSVG},
			Style:   pipeline.DefaultStyle,
			Engine:  pipeline.DefaultEngine,
			Scale:   pipeline.DefaultScale,
		},
		Server: ServerConfig{
			Listen:         DefaultListen,
			RequestTimeout: DefaultRequestTimeout,
			MaxRecords:     DefaultMaxRecords,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[layout]")
	}
	opts := c.PipelineOptions()
	if err := opts.ValidateForRender(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[render]")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[log] level")
	}
	if c.Cache.Dir != "" {
		if err := errors.ValidatePath(c.Cache.Dir); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[cache] dir")
		}
	}
	if c.Server.RequestTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[server] request_timeout must not be negative")
	}
	if c.Server.MaxRecords < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[server] max_records must not be negative")
	}
	return nil
}

// LogLevel returns the configured level, falling back to info.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// PipelineOptions returns pipeline options seeded from the configuration.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Layout:      c.Layout,
		Formats:     append([]string(nil), c.Render.Formats...),
		Style:       c.Render.Style,
		Engine:      c.Render.Engine,
		Interactive: c.Render.Interactive,
		Scale:       c.Render.Scale,
	}
}

// WriteTOML writes the configuration in the file format Load reads.
func (c *Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
