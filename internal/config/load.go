package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
)

// Environment variables that override file settings.
const (
	EnvRedisAddr = "TRACKTREE_REDIS_ADDR"
	EnvMongoURI  = "TRACKTREE_MONGO_URI"
	EnvListen    = "TRACKTREE_LISTEN"
	EnvLogLevel  = "TRACKTREE_LOG_LEVEL"
	EnvCacheDir  = "TRACKTREE_CACHE_DIR"
	EnvNoCache   = "TRACKTREE_NO_CACHE"
)

// DefaultPath returns $XDG_CONFIG_HOME/tracktree/config.toml (or the OS
// equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "tracktree", "config.toml"), nil
}

// Load reads configuration in priority order:
//  1. Defaults
//  2. The TOML file at path, or DefaultPath when path is empty
//  3. Environment variables
//
// A missing file at the default location is not an error; a missing file
// that was asked for explicitly is.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			if !os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
			}
			if explicit {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
			}
		}
	}

	if err := loadFromEnv(cfg, lookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}

func loadFromEnv(cfg *Config, lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(EnvRedisAddr); ok {
		cfg.Cache.Redis.Addr = v
	}
	if v, ok := lookupEnv(EnvMongoURI); ok {
		cfg.Store.Mongo.URI = v
	}
	if v, ok := lookupEnv(EnvListen); ok && v != "" {
		cfg.Server.Listen = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookupEnv(EnvCacheDir); ok && v != "" {
		cfg.Cache.Dir = v
	}
	if v, ok := lookupEnv(EnvNoCache); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvNoCache)
		}
		cfg.Cache.Disabled = b
	}
	return nil
}
