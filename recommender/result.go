package recommender

import (
	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/filter"
	"github.com/rushteam/filmrec/knn"
)

// Status 是推荐结果状态
type Status string

const (
	StatusOK           Status = "ok"            // 有推荐结果
	StatusEmpty        Status = "empty"         // 没有候选（非错误）
	StatusInvalidInput Status = "invalid_input" // 调用方输入不满足前置条件
)

// Request 是一次推荐请求
type Request struct {
	UserID      string             `json:"user_id,omitempty"`
	LikedIDs    []int64            `json:"liked_ids"`
	DislikedIDs []int64            `json:"disliked_ids,omitempty"`
	Constraints filter.Constraints `json:"filters"`
	// K 覆盖默认返回数量，<=0 使用服务配置
	K int `json:"k,omitempty"`
}

// Result 是推荐结果。IDs 按距离升序，不含已评价影片。
type Result struct {
	RequestID string         `json:"request_id"`
	Status    Status         `json:"status"`
	IDs       []int64        `json:"ids"`
	Neighbors []knn.Neighbor `json:"neighbors,omitempty"`
	// Reason 是 StatusEmpty 的原因（no_candidates / all_rated）
	Reason string `json:"reason,omitempty"`
	// Err 是 StatusInvalidInput 的具体错误（NO_LIKED_DATA / INVALID_FILTER_RANGE / INVALID_INPUT）
	Err *core.DomainError `json:"error,omitempty"`
}
