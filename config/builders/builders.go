// Package builders 注册内置 Node 的配置构建器：
//
//	import _ "github.com/rushteam/filmrec/config/builders"
package builders

import (
	"fmt"

	"github.com/rushteam/filmrec/config"
	"github.com/rushteam/filmrec/feature"
	"github.com/rushteam/filmrec/filter"
	"github.com/rushteam/filmrec/pipeline"
	"github.com/rushteam/filmrec/pkg/conv"
	"github.com/rushteam/filmrec/postprocess"
	"github.com/rushteam/filmrec/profile"
	"github.com/rushteam/filmrec/recall"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("recall.knn", BuildKNNNode)
	config.Register("postprocess.topn", BuildTopNNode)
	config.Register("postprocess.diversity", BuildDiversityNode)
}

// BuildFilterNode 构建过滤 Node。
//
//	config:
//	  genre: [Drama]
//	  year_range: [1990, 2020]
//	  expr: movie.total_votes >= 50
//	  exclude: [101, 102]
func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	opts := make(map[string]any, len(cfg))
	var exclude []int64
	for k, v := range cfg {
		if k == "exclude" {
			raw, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("exclude must be a list of ids")
			}
			exclude = conv.ConvertSlice(raw, func(e any) (int64, bool) {
				n, ok := conv.ToInt(e)
				return int64(n), ok
			})
			continue
		}
		opts[k] = v
	}

	constraints, err := filter.FromOptions(opts)
	if err != nil {
		return nil, err
	}
	filters, err := constraints.Filters()
	if err != nil {
		return nil, err
	}
	if len(exclude) > 0 {
		filters = append(filters, filter.NewExcludeFilter(exclude...))
	}
	return filter.NewFilterNode(filters...), nil
}

// BuildKNNNode 构建近邻召回 Node。
//
//	config:
//	  k: 20
//	  dislike_weight: 1.0
//	  weights: {weighted_rating: 8}
//	  tfidf: {max_features: 5000, min_df: 2, max_df: 0.8}
func BuildKNNNode(cfg map[string]any) (pipeline.Node, error) {
	encCfg := feature.DefaultConfig()

	if raw, ok := cfg["weights"].(map[string]any); ok {
		overrides := conv.MapToFloat64(raw)
		if len(overrides) != len(raw) {
			return nil, fmt.Errorf("weights must be numbers")
		}
		var err error
		if encCfg, err = encCfg.WithWeights(overrides); err != nil {
			return nil, err
		}
	}
	if raw, ok := cfg["tfidf"].(map[string]any); ok {
		encCfg.TFIDF.MaxFeatures = int(conv.ConfigGetInt64(raw, "max_features", int64(encCfg.TFIDF.MaxFeatures)))
		encCfg.TFIDF.MinDF = conv.ConfigGetFloat64(raw, "min_df", encCfg.TFIDF.MinDF)
		encCfg.TFIDF.MaxDF = conv.ConfigGetFloat64(raw, "max_df", encCfg.TFIDF.MaxDF)
	}

	enc, err := feature.NewEncoder(encCfg)
	if err != nil {
		return nil, err
	}
	opts := profile.Options{
		DislikeWeight: conv.ConfigGetFloat64(cfg, "dislike_weight", profile.DefaultOptions().DislikeWeight),
	}
	return &recall.KNN{
		Encoder: enc,
		Profile: opts,
		K:       int(conv.ConfigGetInt64(cfg, "k", 0)),
	}, nil
}

// BuildTopNNode 构建截断 Node（config: {n: 20}）
func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(cfg, "n", 0)
	if n < 0 {
		return nil, fmt.Errorf("n must be >= 0")
	}
	return &postprocess.TopNNode{N: int(n)}, nil
}

// BuildDiversityNode 构建多样性 Node（config: {max_per_genre: 2}）
func BuildDiversityNode(cfg map[string]any) (pipeline.Node, error) {
	return &postprocess.Diversity{MaxPerGenre: int(conv.ConfigGetInt64(cfg, "max_per_genre", 1))}, nil
}
