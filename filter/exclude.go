package filter

import (
	"context"

	"github.com/rushteam/filmrec/core"
)

// ExcludeFilter 过滤掉固定 ID 集合中的影片（例如用户已评价的影片）。
type ExcludeFilter struct {
	IDs map[int64]struct{}
}

// NewExcludeFilter 由 ID 列表创建
func NewExcludeFilter(ids ...int64) *ExcludeFilter {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &ExcludeFilter{IDs: set}
}

// NewRatedFilter 过滤掉请求中已评价（喜欢或不喜欢）的影片
func NewRatedFilter(rctx *core.RecommendContext) *ExcludeFilter {
	return &ExcludeFilter{IDs: rctx.Rated()}
}

func (f *ExcludeFilter) Name() string {
	return "filter.exclude"
}

func (f *ExcludeFilter) ShouldFilter(_ context.Context, _ *core.RecommendContext, item *core.Item) (bool, error) {
	_, ok := f.IDs[item.ID]
	return ok, nil
}
