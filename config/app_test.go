package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/filmrec/catalog"
	"github.com/rushteam/filmrec/feature"
	"github.com/rushteam/filmrec/recall"
	"github.com/rushteam/filmrec/store"
)

func TestLoadAppConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadAppConfig("")
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if cfg.Recommend.K != 20 {
		t.Errorf("K = %d, want 20", cfg.Recommend.K)
	}
	if cfg.Profile.DislikeWeight != 1 {
		t.Errorf("DislikeWeight = %v, want 1", cfg.Profile.DislikeWeight)
	}
	if got := cfg.Encoder.Weights()[feature.ColumnWeightedRating]; got != 10 {
		t.Errorf("weighted_rating weight = %v, want 10", got)
	}
	if _, ok := cfg.CatalogLoader().(*catalog.CSVLoader); !ok {
		t.Errorf("CatalogLoader() = %T, want *catalog.CSVLoader", cfg.CatalogLoader())
	}
}

func TestLoadAppConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filmrec.yaml")
	data := `
catalog:
  source: sqlite
  path: /tmp/movies.db
recommend:
  k: 10
profile:
  dislike_weight: 0.5
store:
  backend: redis
  redis:
    addr: redis:6379
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FILMREC_RECOMMEND_K", "30")
	t.Setenv("FILMREC_STORE_KEY_PREFIX", "fr")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if cfg.Recommend.K != 30 {
		t.Errorf("K = %d, want 30 (env overrides file)", cfg.Recommend.K)
	}
	if cfg.Profile.DislikeWeight != 0.5 {
		t.Errorf("DislikeWeight = %v, want 0.5", cfg.Profile.DislikeWeight)
	}
	if cfg.Store.Backend != "redis" || cfg.Store.Redis.Addr != "redis:6379" || cfg.Store.KeyPrefix != "fr" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if _, ok := cfg.CatalogLoader().(*catalog.SQLiteLoader); !ok {
		t.Errorf("CatalogLoader() = %T, want *catalog.SQLiteLoader", cfg.CatalogLoader())
	}
}

func TestAppConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{name: "bad source", mutate: func(c *AppConfig) { c.Catalog.Source = "parquet" }},
		{name: "zero k", mutate: func(c *AppConfig) { c.Recommend.K = 0 }},
		{name: "negative dislike weight", mutate: func(c *AppConfig) { c.Profile.DislikeWeight = -1 }},
		{name: "unknown encoder column", mutate: func(c *AppConfig) { c.Encoder.Numeric[0].Name = "budget" }},
		{name: "bad log level", mutate: func(c *AppConfig) { c.Log.Level = "verbose" }},
		{name: "sqlite without path", mutate: func(c *AppConfig) { c.Store.SQLite = "" }},
		{name: "unknown store backend", mutate: func(c *AppConfig) { c.Store.Backend = "etcd" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAppConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
	if err := DefaultAppConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"FILMREC_RECOMMEND_K":            "recommend.k",
		"FILMREC_STORE_REDIS_ADDR":       "store.redis.addr",
		"FILMREC_STORE_KEY_PREFIX":       "store.key_prefix",
		"FILMREC_PROFILE_DISLIKE_WEIGHT": "profile.dislike_weight",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAppConfig_OpenStoreAndStages(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.Store.SQLite = filepath.Join(t.TempDir(), "ratings.db")
	kv, err := cfg.OpenStore(context.Background())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer kv.Close()
	if _, ok := kv.(*store.SQLiteStore); !ok {
		t.Errorf("OpenStore() = %T, want *store.SQLiteStore", kv)
	}

	cfg.Recommend.K = 7
	cfg.Profile.DislikeWeight = 0.25
	p, err := cfg.Stages()
	if err != nil {
		t.Fatalf("Stages: %v", err)
	}
	node, ok := p.Nodes[0].(*recall.KNN)
	if !ok || len(p.Nodes) != 1 {
		t.Fatalf("Stages() = %v", p.Nodes)
	}
	if node.K != 7 || node.Profile.DislikeWeight != 0.25 {
		t.Errorf("KNN = %+v", node)
	}
}
