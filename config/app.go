package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/rushteam/filmrec/catalog"
	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/feature"
	"github.com/rushteam/filmrec/knn"
	"github.com/rushteam/filmrec/pipeline"
	"github.com/rushteam/filmrec/profile"
	"github.com/rushteam/filmrec/recall"
	"github.com/rushteam/filmrec/store"
)

// EnvPrefix 是环境变量前缀：FILMREC_RECOMMEND_K=30 覆盖 recommend.k
const EnvPrefix = "FILMREC_"

// ConfigPathEnvVar 指定配置文件路径的环境变量
const ConfigPathEnvVar = "FILMREC_CONFIG"

// DefaultConfigPaths 按顺序查找，使用第一个存在的文件
var DefaultConfigPaths = []string{
	"filmrec.yaml",
	"filmrec.yml",
	"/etc/filmrec/filmrec.yaml",
}

// AppConfig 是应用配置：默认值 -> YAML 文件 -> 环境变量，逐层覆盖。
type AppConfig struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Encoder   feature.Config  `koanf:"encoder"`
	Profile   profile.Options `koanf:"profile"`
	Store     StoreConfig     `koanf:"store"`
	Log       LogConfig       `koanf:"log"`
	// Pipeline 是可选的 YAML Pipeline 配置文件，为空时使用内置的 recall.knn
	Pipeline string `koanf:"pipeline"`
}

// CatalogConfig 目录数据源
type CatalogConfig struct {
	Source string `koanf:"source" validate:"oneof=csv sqlite"`
	// Path 是 CSV 文件路径或 SQLite DSN
	Path  string `koanf:"path" validate:"required"`
	Table string `koanf:"table" validate:"omitempty,max=64"`
}

// RecommendConfig 推荐参数
type RecommendConfig struct {
	K           int `koanf:"k" validate:"min=1,max=1000"`
	Concurrency int `koanf:"concurrency" validate:"min=1,max=256"`
}

// StoreConfig 评价存储后端
type StoreConfig struct {
	Backend string             `koanf:"backend" validate:"oneof=memory sqlite redis"`
	Redis   store.RedisOptions `koanf:"redis"`
	// SQLite 是 sqlite 后端的数据库文件
	SQLite    string `koanf:"sqlite"`
	KeyPrefix string `koanf:"key_prefix"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
}

// DefaultAppConfig 返回默认配置
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Catalog: CatalogConfig{
			Source: "csv",
			Path:   "data/filmtv_movies.csv",
			Table:  catalog.DefaultTable,
		},
		Recommend: RecommendConfig{
			K:           knn.DefaultK,
			Concurrency: 4,
		},
		Encoder: feature.DefaultConfig(),
		Profile: profile.DefaultOptions(),
		Store: StoreConfig{
			Backend: "sqlite",
			Redis:   store.RedisOptions{Addr: "localhost:6379"},
			SQLite:  "filmrec.db",
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

var validate = validator.New()

// LoadAppConfig 加载配置。path 为空时依次查找 FILMREC_CONFIG 与 DefaultConfigPaths，都不存在时只用默认值与环境变量。
func LoadAppConfig(path string) (*AppConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultAppConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &AppConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate 校验结构体标签与编码器配置
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	if err := c.Encoder.Validate(); err != nil {
		return fmt.Errorf("encoder: %w", err)
	}
	if c.Store.Backend == "redis" && c.Store.Redis.Addr == "" {
		return errors.New("store.redis.addr required for redis backend")
	}
	if c.Store.Backend == "sqlite" && c.Store.SQLite == "" {
		return errors.New("store.sqlite required for sqlite backend")
	}
	return nil
}

// OpenStore 根据配置打开评价存储
func (c *AppConfig) OpenStore(ctx context.Context) (core.Store, error) {
	switch c.Store.Backend {
	case "redis":
		return store.NewRedisStore(ctx, c.Store.Redis)
	case "sqlite":
		return store.NewSQLiteStore(ctx, c.Store.SQLite)
	default:
		return store.NewMemoryStore(), nil
	}
}

// Stages 构建推荐阶段：配置了 Pipeline 文件时从文件构建，
// 否则使用 Encoder / Profile / Recommend.K 构建的 recall.knn。
func (c *AppConfig) Stages() (*pipeline.Pipeline, error) {
	if c.Pipeline != "" {
		return LoadPipeline(c.Pipeline)
	}
	enc, err := feature.NewEncoder(c.Encoder)
	if err != nil {
		return nil, err
	}
	return pipeline.New(&recall.KNN{Encoder: enc, Profile: c.Profile, K: c.Recommend.K}), nil
}

// CatalogLoader 根据配置创建目录加载器
func (c *AppConfig) CatalogLoader() catalog.Loader {
	if c.Catalog.Source == "sqlite" {
		return catalog.NewSQLiteLoader(c.Catalog.Path, c.Catalog.Table)
	}
	return catalog.NewCSVLoader(c.Catalog.Path)
}

// envKey 把 FILMREC_STORE_REDIS_ADDR 映射为 store.redis.addr。
// 第一段之后的下划线按已知的多词字段名保留。
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, multi := range multiWordKeys {
		key = strings.ReplaceAll(key, multi, strings.ReplaceAll(multi, "_", "\x00"))
	}
	key = strings.ReplaceAll(key, "_", ".")
	return strings.ReplaceAll(key, "\x00", "_")
}

var multiWordKeys = []string{"key_prefix", "dislike_weight", "max_features", "min_df", "max_df"}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
