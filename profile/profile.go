// Package profile 把用户的喜欢/不喜欢影片聚合为编码空间中的一个查询向量。
package profile

import (
	"fmt"

	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/feature"
)

// Options 是画像参数。
type Options struct {
	// DislikeWeight 是不喜欢均值的系数，默认 1（喜欢与不喜欢等比例对比）。
	// 不按喜欢/不喜欢的数量做额外归一化。
	DislikeWeight float64 `yaml:"dislike_weight" json:"dislike_weight" koanf:"dislike_weight" validate:"gte=0"`
}

// DefaultOptions 返回默认参数
func DefaultOptions() Options {
	return Options{DislikeWeight: 1}
}

// Build 用默认参数构建画像
func Build(space *feature.Space, liked, disliked []*core.Movie) (feature.Vector, error) {
	return DefaultOptions().Build(space, liked, disliked)
}

// Build 计算 mean(liked) - w * mean(disliked)。
// 不喜欢的信号把画像推离不喜欢的区域，而不只是降低其权重；disliked 为空时不做惩罚。
// liked 为空返回 NO_LIKED_DATA。
func (o Options) Build(space *feature.Space, liked, disliked []*core.Movie) (feature.Vector, error) {
	if len(liked) == 0 {
		return nil, core.WrapDomainError(core.ModuleProfile, core.ErrorCodeNoLikedData, "cannot build profile", core.ErrNoLikedData)
	}
	if space == nil {
		return nil, core.NewDomainError(core.ModuleProfile, core.ErrorCodeInvalidInput, "nil encoding space")
	}
	if o.DislikeWeight < 0 {
		return nil, core.NewDomainError(core.ModuleProfile, core.ErrorCodeInvalidInput,
			fmt.Sprintf("dislike weight must be non-negative, got %v", o.DislikeWeight))
	}

	dim := space.Dim()
	profile := feature.Mean(space.Transform(liked), dim)
	if len(disliked) == 0 || o.DislikeWeight == 0 {
		return profile, nil
	}
	penalty := feature.Mean(space.Transform(disliked), dim).Scale(o.DislikeWeight)
	return profile.Sub(penalty), nil
}
