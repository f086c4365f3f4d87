package recall

import (
	"context"
	"strconv"

	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/feature"
	"github.com/rushteam/filmrec/filter"
	"github.com/rushteam/filmrec/knn"
	"github.com/rushteam/filmrec/pipeline"
	"github.com/rushteam/filmrec/pkg/conv"
	"github.com/rushteam/filmrec/profile"
)

// 请求级 Label：候选集为空的原因
const (
	LabelEmptyReason   = "empty_reason"
	ReasonNoCandidates = "no_candidates" // 过滤后没有候选
	ReasonAllRated     = "all_rated"     // 候选全部是已评价影片
)

// ParamK 是 RecommendContext.Params 中覆盖返回数量的参数名
const ParamK = "k"

// KNN 是基于内容的近邻召回 Node：输入为过滤后的候选集，输出为距离用户画像最近的 K 部影片。
//
// 编码空间在剔除已评价影片之前的候选集上拟合；喜欢/不喜欢的影片从完整目录解析
// （即使它们不满足过滤条件），再用同一个空间变换；检索只在剔除后的候选中进行。
type KNN struct {
	Encoder *feature.Encoder
	Profile profile.Options
	// K 返回数量，<=0 使用 knn.DefaultK
	K int
}

// NewKNN 使用默认编码配置与画像参数创建 KNN Node
func NewKNN(k int) *KNN {
	enc, _ := feature.NewEncoder(feature.DefaultConfig())
	return &KNN{Encoder: enc, Profile: profile.DefaultOptions(), K: k}
}

func (n *KNN) Name() string { return "recall.knn" }

func (n *KNN) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *KNN) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		rctx.PutLabel(LabelEmptyReason, core.Label{Value: ReasonNoCandidates, Source: n.Name()})
		return nil, core.WrapDomainError(core.ModuleKNN, core.ErrorCodeEmptyCandidates, "no candidates after filtering", core.ErrEmptyCandidates)
	}
	if rctx.Catalog == nil {
		return nil, core.NewDomainError(core.ModuleKNN, core.ErrorCodeInvalidInput, "recommend context has no catalog")
	}

	remaining, err := filter.NewFilterNode(filter.NewRatedFilter(rctx)).Process(ctx, rctx, items)
	if err != nil {
		return nil, err
	}
	if len(remaining) == 0 {
		rctx.PutLabel(LabelEmptyReason, core.Label{Value: ReasonAllRated, Source: n.Name()})
		return nil, core.WrapDomainError(core.ModuleKNN, core.ErrorCodeEmptyCandidates, "all candidates already rated", core.ErrEmptyCandidates)
	}

	movies := make([]*core.Movie, len(items))
	for i, it := range items {
		movies[i] = it.Movie
	}
	vectors, space, err := n.encoder().FitTransform(movies)
	if err != nil {
		return nil, err
	}
	for i, it := range items {
		it.Vector = vectors[i]
	}

	query, err := n.Profile.Build(space, rctx.Catalog.Lookup(rctx.LikedIDs), rctx.Catalog.Lookup(rctx.DislikedIDs))
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(remaining))
	candidates := make([]feature.Vector, len(remaining))
	byID := make(map[int64]*core.Item, len(remaining))
	for i, it := range remaining {
		ids[i] = it.ID
		candidates[i] = it.Vector
		byID[it.ID] = it
	}
	index, err := knn.NewIndex(ids, candidates)
	if err != nil {
		return nil, core.WrapDomainError(core.ModuleKNN, core.ErrorCodeEmptyCandidates, "build index", err)
	}
	neighbors, err := index.Search(query, nil, n.topK(rctx))
	if err != nil {
		return nil, core.WrapDomainError(core.ModuleKNN, core.ErrorCodeEmptyCandidates, "search", err)
	}

	out := make([]*core.Item, 0, len(neighbors))
	for _, nb := range neighbors {
		it := byID[nb.ID]
		it.Score = nb.Distance
		it.PutLabel("recall_source", core.Label{Value: "knn", Source: "recall"})
		it.PutLabel("knn_distance", core.Label{Value: strconv.FormatFloat(nb.Distance, 'f', 4, 64), Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

// topK 请求参数 k 优先于 Node 配置
func (n *KNN) topK(rctx *core.RecommendContext) int {
	if k := conv.ConfigGetInt64(rctx.Params, ParamK, 0); k > 0 {
		return int(k)
	}
	return n.K
}

func (n *KNN) encoder() *feature.Encoder {
	if n.Encoder != nil {
		return n.Encoder
	}
	enc, _ := feature.NewEncoder(feature.DefaultConfig())
	return enc
}
