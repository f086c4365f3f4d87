package catalog

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/feature"
)

// Loader 从某个数据源加载完整目录。
type Loader interface {
	Name() string
	Load(ctx context.Context) (*Catalog, error)
}

// 源数据列名
const (
	colID             = "filmtv_id"
	colTitle          = "title"
	colYear           = "year"
	colGenre          = "genre"
	colCountry        = "country"
	colDuration       = "duration"
	colDirectors      = "directors"
	colActors         = "actors"
	colAvgVote        = "avg_vote"
	colTotalVotes     = "total_votes"
	colHumor          = "humor"
	colRhythm         = "rhythm"
	colEffort         = "effort"
	colTension        = "tension"
	colErotism        = "erotism"
	colDescription    = "description"
	colDurationLog    = "duration_log"
	colGenreEncoded   = "genre_encoded"
	colWeightedRating = "weighted_rating"
)

// RequiredColumns 是每条记录必须具备的列。
var RequiredColumns = []string{
	colID, colTitle, colYear, colGenre, colCountry, colDuration, colDirectors, colActors,
	colAvgVote, colTotalVotes, colHumor, colRhythm, colEffort, colTension, colErotism,
}

// derivedColumns 是源数据可省略、由加载器统一计算的列。
var derivedColumns = []string{colDurationLog, colGenreEncoded, colWeightedRating}

// rowParser 按表头把一行原始值解析为 core.Movie。
// 缺失（空值）的必填字段或无法解析的数值会使整行被丢弃。
type rowParser struct {
	index map[string]int
}

func newRowParser(header []string) (*rowParser, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			fmt.Sprintf("catalog source missing required columns: %s", strings.Join(missing, ", ")))
	}
	return &rowParser{index: index}, nil
}

func (p *rowParser) has(col string) bool {
	_, ok := p.index[col]
	return ok
}

// parse 解析一行；ok=false 表示该行应被丢弃。
func (p *rowParser) parse(record []string) (m *core.Movie, ok bool) {
	r := rowReader{p: p, record: record, ok: true}

	m = &core.Movie{
		ID:          r.int64(colID),
		Title:       r.str(colTitle),
		Year:        int(r.int64(colYear)),
		Genres:      splitGenres(r.str(colGenre)),
		Country:     r.str(colCountry),
		Duration:    r.float(colDuration),
		Directors:   r.str(colDirectors),
		Actors:      r.str(colActors),
		AvgVote:     r.float(colAvgVote),
		TotalVotes:  r.float(colTotalVotes),
		Humor:       r.float(colHumor),
		Rhythm:      r.float(colRhythm),
		Effort:      r.float(colEffort),
		Tension:     r.float(colTension),
		Erotism:     r.float(colErotism),
		Description: r.optional(colDescription),
	}
	// 源数据提供了派生列时按必填处理
	if p.has(colDurationLog) {
		m.DurationLog = r.float(colDurationLog)
	}
	if p.has(colGenreEncoded) {
		m.GenreCode = r.float(colGenreEncoded)
	}
	if p.has(colWeightedRating) {
		m.WeightedRating = r.float(colWeightedRating)
	}
	if len(m.Genres) == 0 {
		return nil, false
	}
	return m, r.ok
}

// naTokens 是表示缺失值的写法（与 pandas read_csv 默认的 na_values 一致）
var naTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {}, "-NaN": {}, "-nan": {},
	"1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {}, "NA": {}, "NULL": {}, "NaN": {},
	"None": {}, "n/a": {}, "nan": {}, "null": {},
}

type rowReader struct {
	p      *rowParser
	record []string
	ok     bool
}

func (r *rowReader) raw(col string) (string, bool) {
	i, ok := r.p.index[col]
	if !ok || i >= len(r.record) {
		return "", false
	}
	v := strings.TrimSpace(r.record[i])
	if _, na := naTokens[v]; na {
		return "", false
	}
	return v, v != ""
}

func (r *rowReader) str(col string) string {
	v, ok := r.raw(col)
	if !ok {
		r.ok = false
	}
	return v
}

func (r *rowReader) optional(col string) string {
	v, _ := r.raw(col)
	return v
}

func (r *rowReader) float(col string) float64 {
	v, ok := r.raw(col)
	if !ok {
		r.ok = false
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		r.ok = false
		return 0
	}
	return f
}

func (r *rowReader) int64(col string) int64 {
	v, ok := r.raw(col)
	if !ok {
		r.ok = false
		return 0
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	// 部分导出工具把整数写成 "1999.0"
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != float64(int64(f)) {
		r.ok = false
		return 0
	}
	return int64(f)
}

func splitGenres(raw string) []string {
	var out []string
	for _, g := range strings.Split(raw, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// build 去重后计算缺失的派生列。
func (p *rowParser) build(movies []*core.Movie, dropped int) *Catalog {
	c := newCatalog(movies, dropped)
	derive(c.movies, deriveOptions{
		durationLog:    !p.has(colDurationLog),
		genreEncoded:   !p.has(colGenreEncoded),
		weightedRating: !p.has(colWeightedRating),
	})
	return c
}

// deriveOptions 指定需要计算的派生列
type deriveOptions struct {
	durationLog    bool
	genreEncoded   bool
	weightedRating bool
}

// derive 对整列计算派生值（不是逐行填补缺失值）：
//
//	duration_log    = log(1 + duration)
//	genre_encoded   = 首个类别在全部类别（字典序）中的编号
//	weighted_rating = v/(v+m)*R + m/(v+m)*C，m 为 total_votes 的 90 分位数，C 为 avg_vote 均值
func derive(movies []*core.Movie, opts deriveOptions) {
	if len(movies) == 0 {
		return
	}

	if opts.durationLog {
		var log feature.LogNormalizer
		for _, m := range movies {
			m.DurationLog = log.NormalizeValue(m.Duration)
		}
	}

	if opts.genreEncoded {
		first := make([]string, len(movies))
		for i, m := range movies {
			first[i] = m.Genres[0]
		}
		enc := feature.FitLabelEncoder(first)
		for i, m := range movies {
			m.GenreCode = float64(enc.Encode(first[i]))
		}
	}

	if opts.weightedRating {
		votes := make([]float64, len(movies))
		ratings := make([]float64, len(movies))
		for i, m := range movies {
			votes[i] = m.TotalVotes
			ratings[i] = m.AvgVote
		}
		minVotes := feature.ComputeStatistics(votes).P90
		meanRating := feature.ComputeStatistics(ratings).Mean
		for _, m := range movies {
			m.WeightedRating = bayesianRating(m.TotalVotes, m.AvgVote, minVotes, meanRating)
		}
	}
}

func bayesianRating(votes, rating, minVotes, meanRating float64) float64 {
	if votes+minVotes == 0 {
		return meanRating
	}
	return votes/(votes+minVotes)*rating + minVotes/(votes+minVotes)*meanRating
}
