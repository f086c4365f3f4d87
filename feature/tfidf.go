package feature

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// TFIDFVectorizer 把一列文本转为 TF-IDF 向量。
//
//	idf(t)  = ln((1 + n) / (1 + df(t))) + 1
//	x(d, t) = count(d, t) * idf(t)，再按行做 L2 归一化
//
// 词表受 MinDF / MaxDF / MaxFeatures 约束：只出现在极少文档里的词（噪声）
// 与几乎出现在所有文档里的词（无区分度）都会被剔除。
// 词表可能为空，此时向量宽度为 0。
type TFIDFVectorizer struct {
	cfg TFIDFConfig

	vocab map[string]int // term -> 列下标（按字典序分配）
	terms []string
	idf   []float64
}

// NewTFIDFVectorizer 创建未拟合的向量化器
func NewTFIDFVectorizer(cfg TFIDFConfig) *TFIDFVectorizer {
	return &TFIDFVectorizer{cfg: cfg}
}

// Fit 在 docs 上学习词表与 IDF。
func (v *TFIDFVectorizer) Fit(docs []string) {
	n := len(docs)
	df := make(map[string]int)
	total := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(doc) {
			total[tok]++
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	minDocs := docCount(v.cfg.MinDF, n, 1)
	maxDocs := docCount(v.cfg.MaxDF, n, float64(n))

	kept := make([]string, 0, len(df))
	for term, d := range df {
		if float64(d) < minDocs || float64(d) > maxDocs {
			continue
		}
		kept = append(kept, term)
	}

	if v.cfg.MaxFeatures > 0 && len(kept) > v.cfg.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if total[kept[i]] != total[kept[j]] {
				return total[kept[i]] > total[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:v.cfg.MaxFeatures]
	}
	sort.Strings(kept)

	v.terms = kept
	v.vocab = make(map[string]int, len(kept))
	v.idf = make([]float64, len(kept))
	for i, term := range kept {
		v.vocab[term] = i
		v.idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}
}

// docCount 把比例或绝对值形式的文档频率阈值换算为文档数。
// 0 表示未设置，使用 fallback。
func docCount(threshold float64, n int, fallback float64) float64 {
	switch {
	case threshold <= 0:
		return fallback
	case threshold < 1:
		return threshold * float64(n)
	case threshold == 1 && fallback > 1:
		// 1.0 作为上限时表示 100% 的文档
		return float64(n)
	default:
		return threshold
	}
}

// Width 返回向量宽度（词表大小）
func (v *TFIDFVectorizer) Width() int { return len(v.terms) }

// Terms 返回词表（按列顺序）
func (v *TFIDFVectorizer) Terms() []string { return v.terms }

// TransformInto 把 doc 的 TF-IDF 值写入 dst（长度必须等于 Width），未登录词被忽略。
func (v *TFIDFVectorizer) TransformInto(doc string, dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
	if len(v.terms) == 0 {
		return
	}
	for _, tok := range Tokenize(doc) {
		if idx, ok := v.vocab[tok]; ok {
			dst[idx] += v.idf[idx]
		}
	}
	var norm float64
	for _, x := range dst {
		norm += x * x
	}
	if norm == 0 {
		return
	}
	norm = math.Sqrt(norm)
	for i := range dst {
		dst[i] /= norm
	}
}

// Tokenize 小写化后切分为长度 >= 2 的词（字母、数字、下划线组成的连续片段）。
func Tokenize(doc string) []string {
	doc = strings.ToLower(doc)
	tokens := make([]string, 0, 8)
	start := -1
	runes := 0
	flush := func(end int) {
		if start >= 0 && runes >= 2 {
			tokens = append(tokens, doc[start:end])
		}
		start, runes = -1, 0
	}
	for i, r := range doc {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsMark(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(doc))
	return tokens
}
