// Package knn 在单次请求的候选集上做暴力欧氏近邻检索。
package knn

import (
	"fmt"
	"math"
	"sort"

	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/feature"
)

// DefaultK 是默认返回的近邻数量
const DefaultK = 20

// Neighbor 是一条检索结果
type Neighbor struct {
	ID       int64   `json:"id"`
	Distance float64 `json:"distance"`
}

// Index 是按请求构建的近邻索引，构建后只读。
type Index struct {
	ids     []int64
	vectors []feature.Vector
	dim     int
}

// NewIndex 由等长的 ids / vectors 构建索引，所有向量维度必须一致。
func NewIndex(ids []int64, vectors []feature.Vector) (*Index, error) {
	if len(ids) != len(vectors) {
		return nil, core.NewDomainError(core.ModuleKNN, core.ErrorCodeInvalidInput,
			fmt.Sprintf("ids/vectors length mismatch: %d vs %d", len(ids), len(vectors)))
	}
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, core.NewDomainError(core.ModuleKNN, core.ErrorCodeInvalidInput,
				fmt.Sprintf("vector %d (id %d) has dimension %d, want %d", i, ids[i], len(v), dim))
		}
	}
	return &Index{ids: ids, vectors: vectors, dim: dim}, nil
}

// Len 返回索引中的候选数量
func (x *Index) Len() int { return len(x.ids) }

// Dim 返回向量维度
func (x *Index) Dim() int { return x.dim }

// Search 返回距离 query 最近的 k 个候选，按距离升序；距离相同时保持候选原顺序。
// exclude 中的 ID 在排序前剔除；k <= 0 使用 DefaultK；剩余候选不足 k 个时全部返回。
func (x *Index) Search(query feature.Vector, exclude map[int64]struct{}, k int) ([]Neighbor, error) {
	if len(query) != x.dim {
		return nil, core.NewDomainError(core.ModuleKNN, core.ErrorCodeInvalidInput,
			fmt.Sprintf("query dimension %d, index dimension %d", len(query), x.dim))
	}
	if k <= 0 {
		k = DefaultK
	}

	out := make([]Neighbor, 0, len(x.ids))
	for i, id := range x.ids {
		if _, ok := exclude[id]; ok {
			continue
		}
		out = append(out, Neighbor{ID: id, Distance: EuclideanDistance(query, x.vectors[i])})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

// EuclideanDistance 计算欧氏距离，维度不一致时返回 +Inf。
func EuclideanDistance(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
