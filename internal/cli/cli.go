// Package cli implements the tracktree command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/internal/config"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/cache"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/layout"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "tracktree"

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

	// Config is loaded by the root command before any subcommand runs.
	Config     *config.Config
	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
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

// loadConfig reads the config file and applies its log level unless
// --verbose asked for debug output.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if c.verbose {
		c.SetLogLevel(LogDebug)
	} else {
		c.SetLogLevel(cfg.LogLevel())
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config != nil && c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/tracktree/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// addLayoutFlags registers the geometry flags, seeded from cfg.
func addLayoutFlags(cmd *cobra.Command, cfg *layout.Config) {
	f := cmd.Flags()
	f.Float64Var(&cfg.NodeWidth, "node-width", cfg.NodeWidth, "box width")
	f.Float64Var(&cfg.NodeHeight, "node-height", cfg.NodeHeight, "box height")
	f.Float64Var(&cfg.SiblingSpacing, "sibling-spacing", cfg.SiblingSpacing, "gap between sibling boxes")
	f.Float64Var(&cfg.SubtreeSpacing, "subtree-spacing", cfg.SubtreeSpacing, "minimum gap between neighbouring subtrees")
	f.Float64Var(&cfg.LevelHeight, "level-height", cfg.LevelHeight, "vertical distance between levels")
	f.Float64Var(&cfg.Padding, "padding", cfg.Padding, "margin around the diagram")
}

// applyChangedLayoutFlags copies geometry flags the user actually set onto
// base, so config file values survive untouched flags.
func applyChangedLayoutFlags(cmd *cobra.Command, flags layout.Config, base layout.Config) layout.Config {
	set := func(name string, dst *float64, v float64) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("node-width", &base.NodeWidth, flags.NodeWidth)
	set("node-height", &base.NodeHeight, flags.NodeHeight)
	set("sibling-spacing", &base.SiblingSpacing, flags.SiblingSpacing)
	set("subtree-spacing", &base.SubtreeSpacing, flags.SubtreeSpacing)
	set("level-height", &base.LevelHeight, flags.LevelHeight)
	set("padding", &base.Padding, flags.Padding)
	return base
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// stripExt removes the record or layout extension from a path:
// "tasks.json" → "tasks", "tasks.layout.json" → "tasks".
func stripExt(path string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return strings.TrimSuffix(base, ".layout")
}
