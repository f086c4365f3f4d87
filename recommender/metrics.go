package recommender

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal 按结果状态统计推荐请求
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmrec_recommend_requests_total",
			Help: "Total number of recommendation requests by result status",
		},
		[]string{"status", "reason"},
	)

	// RequestDuration 推荐请求耗时
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filmrec_recommend_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"status"},
	)

	// CandidateSetSize 过滤后候选集大小
	CandidateSetSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "filmrec_candidate_set_size",
			Help:    "Number of candidates remaining after hard filters",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	// CatalogSize 当前目录快照中的影片数量
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filmrec_catalog_movies",
			Help: "Number of movies in the current catalog snapshot",
		},
	)
)
