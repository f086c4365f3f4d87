package filter

import (
	"context"
	"strings"

	"github.com/rushteam/filmrec/core"
)

// GenreFilter 保留包含任一指定类别的影片（大小写不敏感）。
type GenreFilter struct {
	Genres []string
}

func (f *GenreFilter) Name() string { return "filter.genre" }

func (f *GenreFilter) ShouldFilter(_ context.Context, _ *core.RecommendContext, item *core.Item) (bool, error) {
	if len(f.Genres) == 0 {
		return false, nil
	}
	for _, g := range f.Genres {
		if item.Movie.HasGenre(g) {
			return false, nil
		}
	}
	return true, nil
}

// RangeFilter 保留某个数值字段落在闭区间内的影片。
type RangeFilter struct {
	Field string
	Range Range
	Value func(*core.Movie) float64
}

// NewDurationFilter 按时长（分钟）过滤
func NewDurationFilter(r Range) *RangeFilter {
	return &RangeFilter{Field: "duration", Range: r, Value: func(m *core.Movie) float64 { return m.Duration }}
}

// NewYearFilter 按年份过滤
func NewYearFilter(r Range) *RangeFilter {
	return &RangeFilter{Field: "year", Range: r, Value: func(m *core.Movie) float64 { return float64(m.Year) }}
}

func (f *RangeFilter) Name() string { return "filter." + f.Field }

func (f *RangeFilter) ShouldFilter(_ context.Context, _ *core.RecommendContext, item *core.Item) (bool, error) {
	return !f.Range.Contains(f.Value(item.Movie)), nil
}

// NameFilter 以逗号分隔的人名列表过滤：任一人名（去空格、大小写不敏感）是字段的子串即保留。
type NameFilter struct {
	Field string
	Names []string
	Value func(*core.Movie) string
}

// NewActorFilter 按演员过滤，names 为逗号分隔的人名
func NewActorFilter(names string) *NameFilter {
	return &NameFilter{Field: "actor", Names: SplitNames(names), Value: func(m *core.Movie) string { return m.Actors }}
}

// NewDirectorFilter 按导演过滤，names 为逗号分隔的人名
func NewDirectorFilter(names string) *NameFilter {
	return &NameFilter{Field: "director", Names: SplitNames(names), Value: func(m *core.Movie) string { return m.Directors }}
}

func (f *NameFilter) Name() string { return "filter." + f.Field }

func (f *NameFilter) ShouldFilter(_ context.Context, _ *core.RecommendContext, item *core.Item) (bool, error) {
	if len(f.Names) == 0 {
		return false, nil
	}
	value := strings.ToLower(f.Value(item.Movie))
	for _, name := range f.Names {
		if strings.Contains(value, name) {
			return false, nil
		}
	}
	return true, nil
}

// SplitNames 切分逗号分隔的人名，去空格、转小写、丢弃空项。
func SplitNames(names string) []string {
	var out []string
	for _, n := range strings.Split(names, ",") {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// TitleFilter 按标题子串过滤（大小写不敏感）。
type TitleFilter struct {
	Query string
}

func (f *TitleFilter) Name() string { return "filter.title" }

func (f *TitleFilter) ShouldFilter(_ context.Context, _ *core.RecommendContext, item *core.Item) (bool, error) {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return false, nil
	}
	return !strings.Contains(strings.ToLower(item.Movie.Title), q), nil
}
