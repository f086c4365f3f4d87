// Package recommender 编排一次推荐：过滤 -> 编码 -> 画像 -> 近邻检索。
package recommender

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/filmrec/catalog"
	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/filter"
	"github.com/rushteam/filmrec/knn"
	"github.com/rushteam/filmrec/pipeline"
	"github.com/rushteam/filmrec/pkg/logging"
	"github.com/rushteam/filmrec/rating"
	"github.com/rushteam/filmrec/recall"
)

// Service 是推荐服务。目录通过 Holder 注入，编码空间每次请求重新拟合，
// Service 自身没有请求间共享的可变状态。
type Service struct {
	catalog     *catalog.Holder
	stages      *pipeline.Pipeline
	ratings     *rating.Store
	concurrency int
}

// Option 配置 Service
type Option func(*Service)

// WithStages 设置过滤之后执行的 Node 链（至少包含一个召回 Node），默认 recall.KNN。
func WithStages(p *pipeline.Pipeline) Option {
	return func(s *Service) { s.stages = p }
}

// WithKNN 用给定的 KNN Node 作为唯一的阶段
func WithKNN(node *recall.KNN) Option {
	return func(s *Service) { s.stages = pipeline.New(node) }
}

// WithRatings 设置用户评价存储（RecommendForUser 需要）
func WithRatings(r *rating.Store) Option {
	return func(s *Service) { s.ratings = r }
}

// WithConcurrency 设置 RecommendMany 的并发上限
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New 创建推荐服务
func New(holder *catalog.Holder, opts ...Option) (*Service, error) {
	s := &Service{
		catalog:     holder,
		stages:      pipeline.New(recall.NewKNN(knn.DefaultK)),
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	if holder == nil {
		return nil, fmt.Errorf("recommender: nil catalog holder")
	}
	hasRecall := false
	for _, n := range s.stages.Nodes {
		if n.Kind() == pipeline.KindRecall {
			hasRecall = true
		}
	}
	if !hasRecall {
		return nil, fmt.Errorf("recommender: stages must contain a recall node")
	}
	return s, nil
}

// Recommend 执行一次推荐。
//
// 所有预期内的结果（有结果、候选为空、输入无效）都以 (Result, nil) 返回；
// 只有目录不可用等基础设施错误才返回 error。
func (s *Service) Recommend(ctx context.Context, req Request) (res Result, err error) {
	start := time.Now()
	requestID := uuid.NewString()
	res = Result{RequestID: requestID}
	ctx = logging.WithRequestID(ctx, logging.Component("recommender"), requestID)
	log := logging.Ctx(ctx)

	defer func() {
		status := string(res.Status)
		if err != nil {
			status = "error"
		}
		RequestsTotal.WithLabelValues(status, res.Reason).Inc()
		RequestDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}()

	// 喜欢列表为空先于区间校验与空候选判断
	if len(req.LikedIDs) == 0 {
		return s.invalid(ctx, requestID, core.WrapDomainError(core.ModuleRecommender, core.ErrorCodeNoLikedData, "liked ids required", core.ErrNoLikedData)), nil
	}
	filterNode, err := req.Constraints.Node()
	if err != nil {
		if core.IsInvalidInput(err) {
			return s.invalid(ctx, requestID, err), nil
		}
		return Result{}, err
	}

	cat, err := s.catalog.Current(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("catalog: %w", err)
	}
	CatalogSize.Set(float64(cat.Len()))

	rctx := &core.RecommendContext{
		UserID:      req.UserID,
		RequestID:   requestID,
		LikedIDs:    req.LikedIDs,
		DislikedIDs: req.DislikedIDs,
		Catalog:     cat,
		Params:      map[string]any{},
	}
	if req.K > 0 {
		rctx.Params[recall.ParamK] = req.K
	}

	candidates, err := filterNode.Process(ctx, rctx, core.NewItems(cat.Movies()))
	if err != nil {
		return Result{}, err
	}
	CandidateSetSize.Observe(float64(len(candidates)))

	items, err := s.stages.Run(ctx, rctx, candidates)
	switch {
	case err == nil:
	case core.IsEmptyCandidates(err):
		res.Status = StatusEmpty
		res.IDs = []int64{}
		res.Reason = recall.ReasonNoCandidates
		if lbl, ok := rctx.GetLabel(recall.LabelEmptyReason); ok {
			res.Reason = lbl.Value
		}
		log.Info().
			Int("candidates", len(candidates)).
			Str("reason", res.Reason).
			Dur("took", time.Since(start)).
			Msg("no recommendations")
		return res, nil
	case core.IsInvalidInput(err):
		return s.invalid(ctx, requestID, err), nil
	default:
		return Result{}, err
	}

	res.Status = StatusOK
	res.IDs = make([]int64, len(items))
	res.Neighbors = make([]knn.Neighbor, len(items))
	for i, it := range items {
		res.IDs[i] = it.ID
		res.Neighbors[i] = knn.Neighbor{ID: it.ID, Distance: it.Score}
	}
	log.Info().
		Int("liked", len(req.LikedIDs)).
		Int("disliked", len(req.DislikedIDs)).
		Int("candidates", len(candidates)).
		Int("results", len(res.IDs)).
		Dur("took", time.Since(start)).
		Msg("recommended")
	return res, nil
}

func (s *Service) invalid(ctx context.Context, requestID string, err error) Result {
	logging.Ctx(ctx).Info().Err(err).Msg("invalid recommendation request")
	return Result{
		RequestID: requestID,
		Status:    StatusInvalidInput,
		IDs:       []int64{},
		Err:       core.GetDomainError(err),
	}
}

// RecommendMany 并发执行多个独立请求，结果顺序与 reqs 一致。
func (s *Service) RecommendMany(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := s.Recommend(gctx, req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RecommendForUser 用评价存储中的喜欢/不喜欢列表推荐
func (s *Service) RecommendForUser(ctx context.Context, userID string, c filter.Constraints, k int) (Result, error) {
	if s.ratings == nil {
		return Result{}, core.NewDomainError(core.ModuleRecommender, core.ErrorCodeNotSupported, "no rating store configured")
	}
	r, err := s.ratings.Get(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	return s.Recommend(ctx, Request{
		UserID:      userID,
		LikedIDs:    r.Liked,
		DislikedIDs: r.Disliked,
		Constraints: c,
		K:           k,
	})
}

// Search 返回满足条件的影片（目录顺序），limit <= 0 表示不限。
func (s *Service) Search(ctx context.Context, c filter.Constraints, limit int) ([]*core.Movie, error) {
	cat, err := s.catalog.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	movies, err := filter.Apply(ctx, cat.Movies(), c)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(movies) > limit {
		movies = movies[:limit]
	}
	return movies, nil
}

// Seed 返回用于新用户评价的高分影片样本
func (s *Service) Seed(ctx context.Context, n int, minVote float64, seed uint64) ([]*core.Movie, error) {
	cat, err := s.catalog.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return cat.Sample(n, minVote, seed), nil
}

// Lookup 按 ID 从当前目录解析影片，不存在的 ID 被跳过
func (s *Service) Lookup(ctx context.Context, ids []int64) ([]*core.Movie, error) {
	cat, err := s.catalog.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return cat.Lookup(ids), nil
}

// Stats 返回当前目录统计
func (s *Service) Stats(ctx context.Context) (catalog.Stats, error) {
	cat, err := s.catalog.Current(ctx)
	if err != nil {
		return catalog.Stats{}, fmt.Errorf("catalog: %w", err)
	}
	return cat.Stats(), nil
}

// Reload 重新加载目录，进行中的请求继续使用旧快照
func (s *Service) Reload(ctx context.Context) (catalog.Stats, error) {
	cat, err := s.catalog.Reload(ctx)
	if err != nil {
		return catalog.Stats{}, err
	}
	CatalogSize.Set(float64(cat.Len()))
	logging.Component("recommender").Info().Int("movies", cat.Len()).Msg("catalog reloaded")
	return cat.Stats(), nil
}

// Ratings 返回评价存储（可能为 nil）
func (s *Service) Ratings() *rating.Store { return s.ratings }
