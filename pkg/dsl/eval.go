package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/filmrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("movie", cel.MapType(cel.StringType, cel.DynType)),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译后的影片表达式，使用 CEL (Common Expression Language) 实现。
// 编译一次、多次求值；cel.Program 本身线程安全，可在并发请求间共享。
//
// 表达式语法（CEL 标准语法），变量 movie 的字段见 MovieInput：
//   - 数值：movie.avg_vote >= 7.5 / movie.duration < 100
//   - 包含："Drama" in movie.genres
//   - 字符串：movie.country.contains("Italy")
//   - 逻辑：movie.year >= 1990 && movie.humor > 2
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式，要求返回布尔值。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	if ast.OutputType() != cel.BoolType && ast.OutputType() != cel.DynType {
		return nil, fmt.Errorf("expression must return boolean, got %v", ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式
func (p *Program) String() string { return p.expr }

// Match 对单部影片求值。
func (p *Program) Match(m *core.Movie) (bool, error) {
	out, _, err := p.prg.Eval(map[string]any{"movie": MovieInput(m)})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// MovieInput 构建 CEL 表达式的输入数据，key 与目录列名一致。
func MovieInput(m *core.Movie) map[string]any {
	genres := make([]string, len(m.Genres))
	copy(genres, m.Genres)
	return map[string]any{
		"id":              m.ID,
		"title":           m.Title,
		"year":            int64(m.Year),
		"genres":          genres,
		"genre_encoded":   m.GenreCode,
		"country":         m.Country,
		"duration":        m.Duration,
		"duration_log":    m.DurationLog,
		"directors":       m.Directors,
		"actors":          m.Actors,
		"avg_vote":        m.AvgVote,
		"total_votes":     m.TotalVotes,
		"weighted_rating": m.WeightedRating,
		"humor":           m.Humor,
		"rhythm":          m.Rhythm,
		"effort":          m.Effort,
		"tension":         m.Tension,
		"erotism":         m.Erotism,
		"description":     m.Description,
	}
}
