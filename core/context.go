package core

// RecommendContext 承载一次推荐请求的用户信号，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID    string
	RequestID string

	// LikedIDs / DislikedIDs 是用户已评价的影片 ID（顺序即调用方给出的顺序）
	LikedIDs    []int64
	DislikedIDs []int64

	// Catalog 用于从完整目录解析已评价影片（不受过滤条件影响）
	Catalog MovieLookup

	// Labels 是请求级标签，例如 empty_reason
	Labels map[string]Label

	// Params 请求级参数（例如配置驱动 Node 需要的覆盖值）
	Params map[string]any
}

// Rated 返回已评价影片 ID 集合（喜欢 ∪ 不喜欢）。
func (rctx *RecommendContext) Rated() map[int64]struct{} {
	rated := make(map[int64]struct{}, len(rctx.LikedIDs)+len(rctx.DislikedIDs))
	for _, id := range rctx.LikedIDs {
		rated[id] = struct{}{}
	}
	for _, id := range rctx.DislikedIDs {
		rated[id] = struct{}{}
	}
	return rated
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl Label) {
	rctx.Labels = putLabel(rctx.Labels, key, lbl)
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (Label, bool) {
	if rctx.Labels == nil {
		return Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
