package pipeline

import (
	"context"

	"github.com/rushteam/filmrec/core"
)

// Kind 用于标记 Node 类型，方便观测/编排（例如按阶段打点）。
type Kind string

const (
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不符合约束的候选
	KindRecall      Kind = "recall"      // 召回阶段：在候选集中检索近邻
	KindPostProcess Kind = "postprocess" // 后处理阶段：截断/修饰最终结果
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态：Filter 截断候选，Recall 按距离排序并取前 k 个。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}

// NodeBuilder 根据配置构建 Node。
type NodeBuilder func(config map[string]any) (Node, error)
