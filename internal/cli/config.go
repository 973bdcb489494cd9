package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flow/pkg/cache"
	"github.com/matzehuels/flow/pkg/errors"
	"github.com/matzehuels/flow/pkg/pipeline"
)

// defaultAddr is the listen address used by serve when nothing is configured.
const defaultAddr = ":8080"

// Config is the optional config file. Every field has a usable default, so an
// empty or missing file is valid.
//
//	[viewport]
//	width = 1024
//	height = 768
//
//	[cache]
//	backend = "redis"
//	ttl = "1h"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":9000"
//
//	[ids]
//	source = "uuid"
type Config struct {
	Viewport ViewportConfig `toml:"viewport"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
	IDs      IDsConfig      `toml:"ids"`
}

type ViewportConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type CacheConfig struct {
	Backend       string `toml:"backend"`
	TTL           string `toml:"ttl"` // Go duration; empty keeps the per-entry defaults
	RedisAddr     string `toml:"redis_addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type IDsConfig struct {
	Source string `toml:"source"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Viewport: ViewportConfig{Width: pipeline.DefaultWidth, Height: pipeline.DefaultHeight},
		Cache:    CacheConfig{Backend: cache.BackendFile},
		Server:   ServerConfig{Addr: defaultAddr},
		IDs:      IDsConfig{Source: pipeline.DefaultIDs},
	}
}

// LoadConfig reads the config file at path on top of DefaultConfig.
// A missing file is only an error when required is set, which is the case
// when the path was given explicitly with --config.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if err := errors.ValidateViewport(c.Viewport.Width, c.Viewport.Height); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendNone, cache.BackendRedis, cache.BackendMongo:
	default:
		return fmt.Errorf("cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	if c.IDs.Source != "" {
		if err := pipeline.ValidateIDs(c.IDs.Source); err != nil {
			return err
		}
	}
	return nil
}

// TTL returns the configured cache TTL, or zero when unset.
func (c Config) TTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, fmt.Errorf("cache.ttl: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("cache.ttl: must not be negative")
	}
	return d, nil
}

// CacheOptions translates the [cache] section for cache.Open. dir is the
// file backend directory.
func (c Config) CacheOptions(dir string) cache.Options {
	db := c.Cache.MongoDatabase
	if db == "" {
		db = appName
	}
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     dir,
		Redis:   cache.RedisOptions{Addr: c.Cache.RedisAddr, Prefix: appName + ":"},
		Mongo:   cache.MongoOptions{URI: c.Cache.MongoURI, Database: db},
	}
}

// =============================================================================
// Paths
// =============================================================================

// configPath returns the default config file path
// ($XDG_CONFIG_HOME/flow/config.toml, or ~/.config/flow/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// cacheDir returns the file cache directory using XDG standard (~/.cache/flow/).
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
