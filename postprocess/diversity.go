// Package postprocess 提供召回之后的结果修饰 Node（截断、多样性）。
// 这些 Node 只删除结果，不改变相对顺序，输出仍按距离升序。
package postprocess

import (
	"context"
	"strings"

	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/pipeline"
)

// Diversity 按主类别（第一个 genre）限制每类最多保留 MaxPerGenre 部影片。
// 没有类别的影片不受限制。
type Diversity struct {
	// MaxPerGenre <= 0 时按 1 处理
	MaxPerGenre int
}

func (n *Diversity) Name() string {
	return "postprocess.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}
	limit := n.MaxPerGenre
	if limit <= 0 {
		limit = 1
	}

	seen := make(map[string]int, 16)
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		genre := primaryGenre(it.Movie)
		if genre == "" {
			out = append(out, it)
			continue
		}
		if seen[genre] >= limit {
			it.PutLabel("diversity", core.Label{Value: "dropped:" + genre, Source: n.Name()})
			continue
		}
		seen[genre]++
		out = append(out, it)
	}
	return out, nil
}

func primaryGenre(m *core.Movie) string {
	if m == nil || len(m.Genres) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(m.Genres[0]))
}
