package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/pkg/logging"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链，按顺序执行。
type Pipeline struct {
	Nodes []Node
}

// New 创建 Pipeline
func New(nodes ...Node) *Pipeline {
	return &Pipeline{Nodes: nodes}
}

// Append 追加 Node，返回新的 Pipeline（原 Pipeline 不变）。
func (p *Pipeline) Append(nodes ...Node) *Pipeline {
	all := make([]Node, 0, len(p.Nodes)+len(nodes))
	all = append(all, p.Nodes...)
	all = append(all, nodes...)
	return &Pipeline{Nodes: all}
}

// Run 依次执行每个 Node。Node 返回的错误原样透传（便于上层用 errors.Is 判断 DomainError）。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	log := logging.Ctx(ctx)
	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pipeline canceled before %s: %w", node.Name(), err)
		}
		start := time.Now()
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			log.Debug().
				Str("node", node.Name()).
				Str("kind", string(node.Kind())).
				Err(err).
				Msg("node failed")
			return nil, err
		}
		log.Debug().
			Str("node", node.Name()).
			Str("kind", string(node.Kind())).
			Int("in", len(cur)).
			Int("out", len(next)).
			Dur("took", time.Since(start)).
			Msg("node done")
		cur = next
	}
	return cur, nil
}
