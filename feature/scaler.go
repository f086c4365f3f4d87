package feature

import (
	"math"
	"sort"
)

// StandardScaler Z-score 标准化（Standardization）
// 公式: z = (x - μ) / σ
// μ、σ 只来自拟合时的样本（本次请求的候选集），σ 为总体标准差；σ = 0 时按 1 处理。
type StandardScaler struct {
	Mean  float64
	Scale float64
}

// FitStandardScaler 在 values 上拟合
func FitStandardScaler(values []float64) *StandardScaler {
	stats := ComputeStatistics(values)
	scale := stats.Std
	if scale == 0 || math.IsNaN(scale) {
		scale = 1
	}
	return &StandardScaler{Mean: stats.Mean, Scale: scale}
}

// Transform 标准化单个值
func (s *StandardScaler) Transform(value float64) float64 {
	return (value - s.Mean) / s.Scale
}

// LogNormalizer Log 变换
// 公式: x' = log(x + 1)
// 特点: 处理长尾分布，压缩大值（duration_log 由此派生）
type LogNormalizer struct{}

// NormalizeValue 变换单个值
func (LogNormalizer) NormalizeValue(value float64) float64 {
	if value < 0 {
		return 0 // Log 变换要求值 >= 0
	}
	return math.Log1p(value)
}

// FeatureStatistics 特征统计信息
type FeatureStatistics struct {
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
	Median float64
	P90    float64
}

// ComputeStatistics 计算特征统计信息（Std 为总体标准差）
func ComputeStatistics(values []float64) *FeatureStatistics {
	if len(values) == 0 {
		return &FeatureStatistics{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	stats := &FeatureStatistics{
		Min: sorted[0],
		Max: sorted[len(sorted)-1],
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	stats.Mean = sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - stats.Mean) * (v - stats.Mean)
	}
	stats.Std = math.Sqrt(variance / float64(len(values)))

	stats.Median = Percentile(sorted, 0.5)
	stats.P90 = Percentile(sorted, 0.9)

	return stats
}

// Percentile 在已升序排列的 sorted 上做线性插值分位数
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
