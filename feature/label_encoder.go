package feature

import "sort"

// LabelEncoder Label 编码（标签编码）
// 将类别映射为整数（0, 1, 2, ...），类别按字典序编号；未知类别编码为 -1。
type LabelEncoder struct {
	labels map[string]int
}

// FitLabelEncoder 在类别取值上拟合
func FitLabelEncoder(values []string) *LabelEncoder {
	uniq := make(map[string]struct{}, len(values))
	for _, v := range values {
		uniq[v] = struct{}{}
	}
	sorted := make([]string, 0, len(uniq))
	for v := range uniq {
		sorted = append(sorted, v)
	}
	sort.Strings(sorted)

	labels := make(map[string]int, len(sorted))
	for i, v := range sorted {
		labels[v] = i
	}
	return &LabelEncoder{labels: labels}
}

// Encode 编码单个值
func (e *LabelEncoder) Encode(value string) int {
	if label, ok := e.labels[value]; ok {
		return label
	}
	return -1
}

// Len 返回类别数量
func (e *LabelEncoder) Len() int { return len(e.labels) }
