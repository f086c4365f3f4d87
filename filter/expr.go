package filter

import (
	"context"

	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/pkg/dsl"
)

// ExprFilter 用 CEL 表达式过滤：表达式为 true 的影片保留。
//
//	movie.avg_vote >= 7 && "Drama" in movie.genres
type ExprFilter struct {
	Program *dsl.Program
}

// NewExprFilter 编译表达式，语法错误返回 INVALID_INPUT。
func NewExprFilter(expr string) (*ExprFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, core.WrapDomainError(core.ModuleFilter, core.ErrorCodeInvalidInput, "invalid filter expression", err)
	}
	return &ExprFilter{Program: prg}, nil
}

func (f *ExprFilter) Name() string { return "filter.expr" }

func (f *ExprFilter) ShouldFilter(_ context.Context, _ *core.RecommendContext, item *core.Item) (bool, error) {
	ok, err := f.Program.Match(item.Movie)
	if err != nil {
		return true, err
	}
	return !ok, nil
}
