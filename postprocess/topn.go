package postprocess

import (
	"context"

	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/pipeline"
)

// TopNNode 截取前 N 个结果，通常放在召回之后、多样性之后。
//
//	pipeline:
//	  nodes:
//	    - type: recall.knn
//	      config: {k: 50}
//	    - type: postprocess.diversity
//	      config: {max_per_genre: 3}
//	    - type: postprocess.topn
//	      config: {n: 20}
type TopNNode struct {
	// N <= 0 时不截断
	N int
}

func (n *TopNNode) Name() string {
	return "postprocess.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
