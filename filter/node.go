package filter

import (
	"context"

	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/pipeline"
	"github.com/rushteam/filmrec/pkg/logging"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该物品就会被过滤掉；输出保持输入顺序。
type FilterNode struct {
	Filters []Filter
}

// NewFilterNode 创建过滤 Node
func NewFilterNode(filters ...Filter) *FilterNode {
	return &FilterNode{Filters: filters}
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	errCount := 0

	for _, item := range items {
		if item == nil || item.Movie == nil {
			continue
		}

		shouldFilter := false
		filterReason := ""

		// 依次检查每个过滤器
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				// 无法判断的影片不进入候选集
				errCount++
				shouldFilter = true
				filterReason = f.Name() + ":error"
				break
			}
			if ok {
				shouldFilter = true
				filterReason = f.Name()
				break
			}
		}

		if shouldFilter {
			item.PutLabel("filtered", core.Label{
				Value:  "true",
				Source: filterReason,
			})
			continue
		}

		out = append(out, item)
	}

	if errCount > 0 {
		logging.Ctx(ctx).Warn().Int("errors", errCount).Msg("filter errors, items dropped")
	}
	return out, nil
}
