package feature

import (
	"fmt"

	"github.com/rushteam/filmrec/core"
)

// Kind 是列的编码方式
type Kind string

const (
	KindText    Kind = "text"    // TF-IDF
	KindNumeric Kind = "numeric" // Z-score
)

// Block 描述编码空间中一列对应的向量区间 [Offset, Offset+Width)。
type Block struct {
	Column string
	Kind   Kind
	Offset int
	Width  int
	Weight float64
}

// Encoder 是特征编码器：把影片的异构字段（文本 + 数值）编码到同一个定宽、加权的稠密向量空间。
// Encoder 只保存配置，本身无状态；每次 Fit 产出一个新的 Space，可安全地在并发请求间共享。
type Encoder struct {
	cfg Config
}

// NewEncoder 创建编码器，配置非法时返回错误。
func NewEncoder(cfg Config) (*Encoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, core.WrapDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput, "invalid encoder config", err)
	}
	return &Encoder{cfg: cfg}, nil
}

// Config 返回编码器配置
func (e *Encoder) Config() Config { return e.cfg }

// Space 是拟合后的编码空间（词表、IDF、均值/尺度、列布局、权重）。
// 属于一次请求，拟合后只读。
type Space struct {
	blocks  []Block
	text    []*TFIDFVectorizer // 与 blocks 对齐，数值列为 nil
	scalers []*StandardScaler  // 与 blocks 对齐，文本列为 nil
	getText []func(*core.Movie) string
	getNum  []func(*core.Movie) float64
	dim     int
}

// Fit 在候选集上拟合编码空间。候选集为空时返回 EMPTY_CANDIDATES。
func (e *Encoder) Fit(movies []*core.Movie) (*Space, error) {
	if len(movies) == 0 {
		return nil, core.WrapDomainError(core.ModuleFeature, core.ErrorCodeEmptyCandidates, "cannot fit encoder", core.ErrEmptyCandidates)
	}

	s := &Space{}
	offset := 0

	for _, col := range e.cfg.Text {
		get, _ := TextField(col.Name)
		docs := make([]string, len(movies))
		for i, m := range movies {
			docs[i] = get(m)
		}
		vec := NewTFIDFVectorizer(e.cfg.TFIDF)
		vec.Fit(docs)

		s.blocks = append(s.blocks, Block{Column: col.Name, Kind: KindText, Offset: offset, Width: vec.Width(), Weight: col.Weight})
		s.text = append(s.text, vec)
		s.scalers = append(s.scalers, nil)
		s.getText = append(s.getText, get)
		s.getNum = append(s.getNum, nil)
		offset += vec.Width()
	}

	for _, col := range e.cfg.Numeric {
		get, _ := NumericField(col.Name)
		values := make([]float64, len(movies))
		for i, m := range movies {
			values[i] = get(m)
		}

		s.blocks = append(s.blocks, Block{Column: col.Name, Kind: KindNumeric, Offset: offset, Width: 1, Weight: col.Weight})
		s.text = append(s.text, nil)
		s.scalers = append(s.scalers, FitStandardScaler(values))
		s.getText = append(s.getText, nil)
		s.getNum = append(s.getNum, get)
		offset++
	}

	s.dim = offset
	return s, nil
}

// FitTransform 拟合并编码同一批影片。
func (e *Encoder) FitTransform(movies []*core.Movie) ([]Vector, *Space, error) {
	space, err := e.Fit(movies)
	if err != nil {
		return nil, nil, err
	}
	return space.Transform(movies), space, nil
}

// Dim 返回向量维度
func (s *Space) Dim() int { return s.dim }

// Layout 返回列布局（固定顺序：文本列在前，数值列在后）
func (s *Space) Layout() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Vocabulary 返回某个文本列的词表，列不存在或不是文本列时返回 false。
func (s *Space) Vocabulary(column string) ([]string, bool) {
	for i, b := range s.blocks {
		if b.Column == column && b.Kind == KindText {
			return s.text[i].Terms(), true
		}
	}
	return nil, false
}

// Transform 用已拟合的空间编码影片（可以是候选集之外的影片）。
func (s *Space) Transform(movies []*core.Movie) []Vector {
	out := make([]Vector, len(movies))
	for i, m := range movies {
		out[i] = s.TransformOne(m)
	}
	return out
}

// TransformOne 编码单部影片：逐块变换后立即乘以列权重。
func (s *Space) TransformOne(m *core.Movie) Vector {
	v := make(Vector, s.dim)
	for i, b := range s.blocks {
		dst := v[b.Offset : b.Offset+b.Width]
		switch b.Kind {
		case KindText:
			s.text[i].TransformInto(s.getText[i](m), dst)
		case KindNumeric:
			dst[0] = s.scalers[i].Transform(s.getNum[i](m))
		}
		for j := range dst {
			dst[j] *= b.Weight
		}
	}
	return v
}

// String 便于调试输出
func (b Block) String() string {
	return fmt.Sprintf("%s[%s %d:%d x%.2f]", b.Column, b.Kind, b.Offset, b.Offset+b.Width, b.Weight)
}
