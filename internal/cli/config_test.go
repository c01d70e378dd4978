package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/canopyhq/canopy/pkg/pipeline"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("loadConfig() = nil error for explicit missing file")
	}

	// A missing default-location file is not an error.
	cfg, err = loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "file")
	}
	if time.Duration(cfg.Cache.TTL) != pipeline.DefaultTTL {
		t.Errorf("Cache.TTL = %v, want %v", time.Duration(cfg.Cache.TTL), pipeline.DefaultTTL)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, "memory")
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[cache]
backend = "redis"
ttl = "24h"

[cache.redis]
addr = "redis.internal:6379"
db = 2

[store]
backend = "mongo"

[store.mongo]
uri = "mongodb://db.internal:27017"
database = "trees"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "redis")
	}
	if time.Duration(cfg.Cache.TTL) != 24*time.Hour {
		t.Errorf("Cache.TTL = %v, want 24h", time.Duration(cfg.Cache.TTL))
	}
	if cfg.Cache.Redis.Addr != "redis.internal:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("Cache.Redis = %+v", cfg.Cache.Redis)
	}
	if cfg.Store.Backend != "mongo" || cfg.Store.Mongo.Database != "trees" {
		t.Errorf("Store = %+v", cfg.Store)
	}
}

func TestLoadConfig_BadTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nttl = \"yesterday\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig() = nil error for invalid duration")
	}
}

func TestConfig_CacheDir(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cache.Dir = "/tmp/canopy-cache"
	dir, err := cfg.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if dir != "/tmp/canopy-cache" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}

	cfg.Cache.Dir = ""
	dir, err = cfg.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join(".cache", "canopy")) {
		t.Errorf("cacheDir() = %q, want ~/.cache/canopy", dir)
	}
}

func TestConfig_UnknownBackends(t *testing.T) {
	ctx := t.Context()

	cfg := defaultConfig()
	cfg.Cache.Backend = "memcached"
	if _, err := cfg.newCache(ctx); err == nil {
		t.Error("newCache() = nil error for unknown backend")
	}

	cfg = defaultConfig()
	cfg.Store.Backend = "postgres"
	if _, err := cfg.newStore(ctx); err == nil {
		t.Error("newStore() = nil error for unknown backend")
	}
}
