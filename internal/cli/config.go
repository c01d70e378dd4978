package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/canopyhq/canopy/pkg/cache"
	"github.com/canopyhq/canopy/pkg/pipeline"
	"github.com/canopyhq/canopy/pkg/store"
)

// Config holds the CLI configuration, loaded from a TOML file.
// Every field has a usable default so a missing file is not an error.
type Config struct {
	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`
}

// CacheConfig selects and configures the attribute cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Empty means ~/.cache/canopy.
	Dir string `toml:"dir"`

	// TTL is how long cached attribute arrays live, e.g. "168h".
	TTL duration `toml:"ttl"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects and configures the hierarchy document store.
type StoreConfig struct {
	// Backend is one of "memory" or "mongo".
	Backend string `toml:"backend"`

	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig configures the mongo store backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// duration wraps time.Duration so TOML files can use strings like "24h".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Backend: "file",
			TTL:     duration(pipeline.DefaultTTL),
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Store: StoreConfig{
			Backend: "memory",
			Mongo: MongoConfig{
				URI: "mongodb://localhost:27017",
			},
		},
	}
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".config", "canopy", "config.toml")
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// cacheDir returns the configured file cache directory, defaulting to
// ~/.cache/canopy.
func (c Config) cacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".cache", "canopy"), nil
}

// newCache builds the cache backend the config selects.
func (c Config) newCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case "", "file":
		dir, err := c.cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		})
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (must be file, redis, or none)", c.Cache.Backend)
	}
}

// newStore builds the document store the config selects.
func (c Config) newStore(ctx context.Context) (store.Store, error) {
	switch c.Store.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        c.Store.Mongo.URI,
			Database:   c.Store.Mongo.Database,
			Collection: c.Store.Mongo.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q (must be memory or mongo)", c.Store.Backend)
	}
}
