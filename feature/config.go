package feature

import (
	"fmt"
	"math"
)

// ColumnConfig 描述一列特征：列名与权重。
// 权重在变换之后立即乘到该列对应的向量块上，决定该列在欧氏空间中的重要程度。
type ColumnConfig struct {
	Name   string  `yaml:"name" json:"name" koanf:"name"`
	Weight float64 `yaml:"weight" json:"weight" koanf:"weight"`
}

// TFIDFConfig 是文本列向量化参数。
//
//	MinDF / MaxDF: <1 表示文档比例，>=1 表示文档数（与常见 TF-IDF 实现一致）
//	MaxFeatures:   词表上限，按总词频保留，<=0 表示不限
type TFIDFConfig struct {
	MaxFeatures int     `yaml:"max_features" json:"max_features" koanf:"max_features"`
	MinDF       float64 `yaml:"min_df" json:"min_df" koanf:"min_df"`
	MaxDF       float64 `yaml:"max_df" json:"max_df" koanf:"max_df"`
}

// Config 是特征编码器的配置面：文本列、数值列（顺序即向量块顺序）与 TF-IDF 参数。
// 文本块在前，数值块在后。
type Config struct {
	Text    []ColumnConfig `yaml:"text" json:"text" koanf:"text"`
	Numeric []ColumnConfig `yaml:"numeric" json:"numeric" koanf:"numeric"`
	TFIDF   TFIDFConfig    `yaml:"tfidf" json:"tfidf" koanf:"tfidf"`
}

// DefaultTFIDFConfig 返回默认 TF-IDF 参数：词表上限 5000，至少出现在 2 个文档，最多出现在 80% 的文档。
func DefaultTFIDFConfig() TFIDFConfig {
	return TFIDFConfig{
		MaxFeatures: 5000,
		MinDF:       2,
		MaxDF:       0.8,
	}
}

// DefaultConfig 返回默认权重表：
// 评分派生信号（weighted_rating）比单个情绪属性高一个数量级；
// 类别编码约为普通属性的两倍；导演略高于演员与国家。
func DefaultConfig() Config {
	return Config{
		Text: []ColumnConfig{
			{Name: ColumnCountry, Weight: 0.8},
			{Name: ColumnDirectors, Weight: 1.2},
			{Name: ColumnActors, Weight: 1.0},
		},
		Numeric: []ColumnConfig{
			{Name: ColumnYear, Weight: 1.0},
			{Name: ColumnTotalVotes, Weight: 1.2},
			{Name: ColumnHumor, Weight: 1.0},
			{Name: ColumnRhythm, Weight: 1.0},
			{Name: ColumnEffort, Weight: 1.0},
			{Name: ColumnTension, Weight: 1.0},
			{Name: ColumnErotism, Weight: 1.0},
			{Name: ColumnWeightedRating, Weight: 10.0},
			{Name: ColumnDurationLog, Weight: 1.0},
			{Name: ColumnGenreEncoded, Weight: 2.0},
		},
		TFIDF: DefaultTFIDFConfig(),
	}
}

// Weights 返回 {列名: 权重} 表。
func (c Config) Weights() map[string]float64 {
	weights := make(map[string]float64, len(c.Text)+len(c.Numeric))
	for _, col := range c.Text {
		weights[col.Name] = col.Weight
	}
	for _, col := range c.Numeric {
		weights[col.Name] = col.Weight
	}
	return weights
}

// WithWeights 返回覆盖了部分列权重的配置副本，未出现在 overrides 中的列保持原权重。
// 未知列名返回错误。
func (c Config) WithWeights(overrides map[string]float64) (Config, error) {
	out := Config{
		Text:    append([]ColumnConfig(nil), c.Text...),
		Numeric: append([]ColumnConfig(nil), c.Numeric...),
		TFIDF:   c.TFIDF,
	}
	seen := make(map[string]bool, len(overrides))
	for i := range out.Text {
		if w, ok := overrides[out.Text[i].Name]; ok {
			out.Text[i].Weight = w
			seen[out.Text[i].Name] = true
		}
	}
	for i := range out.Numeric {
		if w, ok := overrides[out.Numeric[i].Name]; ok {
			out.Numeric[i].Weight = w
			seen[out.Numeric[i].Name] = true
		}
	}
	for name := range overrides {
		if !seen[name] {
			return Config{}, fmt.Errorf("weight for unconfigured column %q", name)
		}
	}
	return out, out.Validate()
}

// Validate 校验列名已知、无重复、权重为非负有限数。
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Text)+len(c.Numeric))
	check := func(col ColumnConfig) error {
		if seen[col.Name] {
			return fmt.Errorf("duplicate column %q", col.Name)
		}
		seen[col.Name] = true
		if math.IsNaN(col.Weight) || math.IsInf(col.Weight, 0) || col.Weight < 0 {
			return fmt.Errorf("column %q: weight must be a non-negative finite number, got %v", col.Name, col.Weight)
		}
		return nil
	}
	for _, col := range c.Text {
		if _, ok := TextField(col.Name); !ok {
			return fmt.Errorf("unknown text column %q", col.Name)
		}
		if err := check(col); err != nil {
			return err
		}
	}
	for _, col := range c.Numeric {
		if _, ok := NumericField(col.Name); !ok {
			return fmt.Errorf("unknown numeric column %q", col.Name)
		}
		if err := check(col); err != nil {
			return err
		}
	}
	if len(seen) == 0 {
		return fmt.Errorf("no columns configured")
	}
	if c.TFIDF.MinDF < 0 || c.TFIDF.MaxDF < 0 {
		return fmt.Errorf("tfidf: min_df/max_df must be non-negative")
	}
	return nil
}
