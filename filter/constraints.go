package filter

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/pkg/conv"
)

// Constraints 是一组硬过滤条件，全部可选，AND 组合；未设置的条件恒为真。
type Constraints struct {
	Genres   []string `json:"genre,omitempty"`
	Duration *Range   `json:"duration_range,omitempty"`
	Year     *Range   `json:"year_range,omitempty"`
	Actor    string   `json:"actor,omitempty"`    // 逗号分隔
	Director string   `json:"director,omitempty"` // 逗号分隔
	Title    string   `json:"title,omitempty"`
	Expr     string   `json:"expr,omitempty"` // CEL 表达式
}

// IsZero 判断是否没有任何条件
func (c Constraints) IsZero() bool {
	return len(nonBlank(c.Genres)) == 0 && c.Duration == nil && c.Year == nil &&
		strings.TrimSpace(c.Actor) == "" && strings.TrimSpace(c.Director) == "" &&
		strings.TrimSpace(c.Title) == "" && strings.TrimSpace(c.Expr) == ""
}

// Validate 在过滤前校验区间，非法区间返回 INVALID_FILTER_RANGE。
func (c Constraints) Validate() error {
	if c.Duration != nil {
		if err := c.Duration.Validate("duration_range"); err != nil {
			return err
		}
	}
	if c.Year != nil {
		if err := c.Year.Validate("year_range"); err != nil {
			return err
		}
	}
	return nil
}

// Filters 校验并构建过滤器链，顺序固定（便宜的在前）。
func (c Constraints) Filters() ([]Filter, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var filters []Filter
	if genres := nonBlank(c.Genres); len(genres) > 0 {
		filters = append(filters, &GenreFilter{Genres: genres})
	}
	if c.Duration != nil {
		filters = append(filters, NewDurationFilter(*c.Duration))
	}
	if c.Year != nil {
		filters = append(filters, NewYearFilter(*c.Year))
	}
	if strings.TrimSpace(c.Title) != "" {
		filters = append(filters, &TitleFilter{Query: c.Title})
	}
	if strings.TrimSpace(c.Actor) != "" {
		filters = append(filters, NewActorFilter(c.Actor))
	}
	if strings.TrimSpace(c.Director) != "" {
		filters = append(filters, NewDirectorFilter(c.Director))
	}
	if expr := strings.TrimSpace(c.Expr); expr != "" {
		f, err := NewExprFilter(expr)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// Node 校验并构建过滤 Node
func (c Constraints) Node() (*FilterNode, error) {
	filters, err := c.Filters()
	if err != nil {
		return nil, err
	}
	return NewFilterNode(filters...), nil
}

// Apply 返回满足全部条件的影片，保持输入顺序；结果可以为空。
func Apply(ctx context.Context, movies []*core.Movie, c Constraints) ([]*core.Movie, error) {
	node, err := c.Node()
	if err != nil {
		return nil, err
	}
	items, err := node.Process(ctx, &core.RecommendContext{}, core.NewItems(movies))
	if err != nil {
		return nil, err
	}
	out := make([]*core.Movie, len(items))
	for i, it := range items {
		out[i] = it.Movie
	}
	return out, nil
}

// 选项键
const (
	OptGenre         = "genre"
	OptDurationRange = "duration_range"
	OptYearRange     = "year_range"
	OptActor         = "actor"
	OptDirector      = "director"
	OptTitle         = "title"
	OptExpr          = "expr"
	OptStartYear     = "start_year"
	OptEndYear       = "end_year"
	OptMinDuration   = "min_duration"
	OptMaxDuration   = "max_duration"
)

// FromOptions 从选项 map（例如 UI 表单或 YAML 配置）构建 Constraints。
//
//	genre:          []string 或逗号分隔字符串
//	duration_range: [min, max]
//	year_range:     [min, max]
//	start_year / end_year / min_duration / max_duration: 单侧边界
//	actor / director / title / expr: string
//
// 未知键或类型不符返回 INVALID_INPUT；区间合法性由 Validate 检查。
func FromOptions(opts map[string]any) (Constraints, error) {
	var c Constraints
	var unknown []string

	keys := make([]string, 0, len(opts))
	for key := range opts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := opts[key]
		if v == nil {
			continue
		}
		switch key {
		case OptGenre:
			if s, ok := v.(string); ok {
				c.Genres = splitList(s)
				continue
			}
			c.Genres = conv.ToStringSlice(v)
			if c.Genres == nil {
				return c, invalidOption(key, v)
			}
		case OptDurationRange, OptYearRange:
			lo, hi, ok := conv.ToIntPair(v)
			if !ok {
				return c, invalidOption(key, v)
			}
			if key == OptDurationRange {
				c.Duration = Between(lo, hi)
			} else {
				c.Year = Between(lo, hi)
			}
		case OptStartYear, OptEndYear, OptMinDuration, OptMaxDuration:
			n, ok := conv.ToInt(v)
			if !ok {
				return c, invalidOption(key, v)
			}
			switch key {
			case OptStartYear:
				c.Year = withMin(c.Year, n)
			case OptEndYear:
				c.Year = withMax(c.Year, n)
			case OptMinDuration:
				c.Duration = withMin(c.Duration, n)
			case OptMaxDuration:
				c.Duration = withMax(c.Duration, n)
			}
		case OptActor, OptDirector, OptTitle, OptExpr:
			s, ok := v.(string)
			if !ok {
				return c, invalidOption(key, v)
			}
			switch key {
			case OptActor:
				c.Actor = s
			case OptDirector:
				c.Director = s
			case OptTitle:
				c.Title = s
			case OptExpr:
				c.Expr = s
			}
		default:
			unknown = append(unknown, key)
		}
	}

	if len(unknown) > 0 {
		return c, core.NewDomainError(core.ModuleFilter, core.ErrorCodeInvalidInput,
			fmt.Sprintf("unknown filter options: %s", strings.Join(unknown, ", ")))
	}
	return c, nil
}

func invalidOption(key string, v any) error {
	return core.NewDomainError(core.ModuleFilter, core.ErrorCodeInvalidInput,
		fmt.Sprintf("filter option %s: unsupported value %v (%T)", key, v, v))
}

func withMin(r *Range, min int) *Range {
	if r == nil {
		return AtLeast(min)
	}
	return Between(min, r.Max)
}

func withMax(r *Range, max int) *Range {
	if r == nil {
		return AtMost(max)
	}
	return Between(r.Min, max)
}

// nonBlank 去掉空白项；全部为空白时视为未设置
func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
