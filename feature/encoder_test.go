package feature

import (
	"math"
	"testing"

	"github.com/rushteam/filmrec/core"
)

func sampleMovies() []*core.Movie {
	return []*core.Movie{
		{ID: 1, Year: 1990, Country: "USA", Directors: "Steven Spielberg", Actors: "Tom Hanks, Meg Ryan", TotalVotes: 1000, WeightedRating: 7.1, Humor: 2, Rhythm: 3, Effort: 1, Tension: 4, Erotism: 0, DurationLog: 4.7, GenreCode: 1},
		{ID: 2, Year: 2000, Country: "USA", Directors: "Ridley Scott", Actors: "Russell Crowe", TotalVotes: 5000, WeightedRating: 8.0, Humor: 1, Rhythm: 4, Effort: 3, Tension: 5, Erotism: 1, DurationLog: 5.0, GenreCode: 0},
		{ID: 3, Year: 2010, Country: "Italy", Directors: "Steven Spielberg", Actors: "Tom Hanks", TotalVotes: 300, WeightedRating: 6.5, Humor: 4, Rhythm: 2, Effort: 2, Tension: 1, Erotism: 2, DurationLog: 4.6, GenreCode: 2},
		{ID: 4, Year: 2020, Country: "France", Directors: "Luc Besson", Actors: "Jean Reno", TotalVotes: 800, WeightedRating: 6.9, Humor: 3, Rhythm: 3, Effort: 4, Tension: 3, Erotism: 1, DurationLog: 4.8, GenreCode: 1},
	}
}

func TestEncoder_FitTransformLayout(t *testing.T) {
	enc, err := NewEncoder(DefaultConfig())
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	movies := sampleMovies()
	vectors, space, err := enc.FitTransform(movies)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	if len(vectors) != len(movies) {
		t.Fatalf("got %d vectors, want %d", len(vectors), len(movies))
	}

	layout := space.Layout()
	if len(layout) != 13 {
		t.Fatalf("got %d blocks, want 13", len(layout))
	}
	wantOrder := []string{ColumnCountry, ColumnDirectors, ColumnActors, ColumnYear}
	for i, col := range wantOrder {
		if layout[i].Column != col {
			t.Errorf("block %d = %q, want %q", i, layout[i].Column, col)
		}
	}

	// 每个块首尾相接，总宽度等于维度
	offset := 0
	for _, b := range layout {
		if b.Offset != offset {
			t.Errorf("block %s offset = %d, want %d", b.Column, b.Offset, offset)
		}
		offset += b.Width
	}
	if offset != space.Dim() {
		t.Errorf("sum of widths = %d, dim = %d", offset, space.Dim())
	}
	for _, v := range vectors {
		if len(v) != space.Dim() {
			t.Errorf("vector len = %d, want %d", len(v), space.Dim())
		}
	}
}

func TestEncoder_VocabularyRespectsDocumentFrequency(t *testing.T) {
	enc, _ := NewEncoder(DefaultConfig())
	space, err := enc.Fit(sampleMovies())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	// "usa" 出现在 2/4 个文档：满足 min_df=2 且 <= 80%
	terms, ok := space.Vocabulary(ColumnCountry)
	if !ok {
		t.Fatal("country vocabulary missing")
	}
	if len(terms) != 1 || terms[0] != "usa" {
		t.Errorf("country vocabulary = %v, want [usa]", terms)
	}
	// 数值列没有词表
	if _, ok := space.Vocabulary(ColumnYear); ok {
		t.Error("year should not have a vocabulary")
	}
}

func TestEncoder_EmptyVocabularyIsZeroWidth(t *testing.T) {
	cfg := Config{
		Text:    []ColumnConfig{{Name: ColumnDirectors, Weight: 1}},
		Numeric: []ColumnConfig{{Name: ColumnYear, Weight: 1}},
		TFIDF:   DefaultTFIDFConfig(),
	}
	enc, err := NewEncoder(cfg)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	movies := []*core.Movie{
		{ID: 1, Year: 2000, Directors: "Alpha"},
		{ID: 2, Year: 2010, Directors: "Beta"},
	}
	vectors, space, err := enc.FitTransform(movies)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	if space.Dim() != 1 {
		t.Fatalf("dim = %d, want 1", space.Dim())
	}
	if vectors[0][0] != -1 || vectors[1][0] != 1 {
		t.Errorf("standardized years = %v, %v; want -1, 1", vectors[0][0], vectors[1][0])
	}
}

func TestEncoder_WeightsApplied(t *testing.T) {
	base := Config{
		Numeric: []ColumnConfig{{Name: ColumnYear, Weight: 1}},
		TFIDF:   DefaultTFIDFConfig(),
	}
	heavy, err := base.WithWeights(map[string]float64{ColumnYear: 10})
	if err != nil {
		t.Fatalf("WithWeights: %v", err)
	}
	movies := []*core.Movie{{ID: 1, Year: 2000}, {ID: 2, Year: 2010}}

	e1, _ := NewEncoder(base)
	e2, _ := NewEncoder(heavy)
	v1, _, _ := e1.FitTransform(movies)
	v2, _, _ := e2.FitTransform(movies)
	if math.Abs(v2[1][0]-10*v1[1][0]) > 1e-9 {
		t.Errorf("weighted = %v, want 10 x %v", v2[1][0], v1[1][0])
	}
}

func TestEncoder_ConstantColumn(t *testing.T) {
	cfg := Config{Numeric: []ColumnConfig{{Name: ColumnHumor, Weight: 1}}}
	enc, _ := NewEncoder(cfg)
	vectors, _, err := enc.FitTransform([]*core.Movie{{ID: 1, Humor: 3}, {ID: 2, Humor: 3}})
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	for _, v := range vectors {
		if v[0] != 0 || math.IsNaN(v[0]) {
			t.Errorf("constant column should encode to 0, got %v", v[0])
		}
	}
}

func TestEncoder_EmptyInput(t *testing.T) {
	enc, _ := NewEncoder(DefaultConfig())
	_, _, err := enc.FitTransform(nil)
	if !core.IsEmptyCandidates(err) {
		t.Fatalf("err = %v, want EMPTY_CANDIDATES", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default", cfg: DefaultConfig()},
		{name: "unknown column", cfg: Config{Numeric: []ColumnConfig{{Name: "budget", Weight: 1}}}, wantErr: true},
		{name: "text column as numeric", cfg: Config{Numeric: []ColumnConfig{{Name: ColumnActors, Weight: 1}}}, wantErr: true},
		{name: "duplicate", cfg: Config{Numeric: []ColumnConfig{{Name: ColumnYear, Weight: 1}, {Name: ColumnYear, Weight: 2}}}, wantErr: true},
		{name: "negative weight", cfg: Config{Numeric: []ColumnConfig{{Name: ColumnYear, Weight: -1}}}, wantErr: true},
		{name: "empty", cfg: Config{}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := DefaultConfig().WithWeights(map[string]float64{"budget": 1}); err == nil {
		t.Error("WithWeights should reject unknown column")
	}
}
