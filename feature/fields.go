package feature

import (
	"strings"

	"github.com/rushteam/filmrec/core"
)

// 可编码的列名（与目录文件的列名一致）
const (
	ColumnCountry   = "country"
	ColumnDirectors = "directors"
	ColumnActors    = "actors"
	ColumnGenres    = "genre"

	ColumnYear           = "year"
	ColumnDuration       = "duration"
	ColumnDurationLog    = "duration_log"
	ColumnAvgVote        = "avg_vote"
	ColumnTotalVotes     = "total_votes"
	ColumnWeightedRating = "weighted_rating"
	ColumnGenreEncoded   = "genre_encoded"
	ColumnHumor          = "humor"
	ColumnRhythm         = "rhythm"
	ColumnEffort         = "effort"
	ColumnTension        = "tension"
	ColumnErotism        = "erotism"
)

var textFields = map[string]func(*core.Movie) string{
	ColumnCountry:   func(m *core.Movie) string { return m.Country },
	ColumnDirectors: func(m *core.Movie) string { return m.Directors },
	ColumnActors:    func(m *core.Movie) string { return m.Actors },
	ColumnGenres:    func(m *core.Movie) string { return strings.Join(m.Genres, " ") },
}

var numericFields = map[string]func(*core.Movie) float64{
	ColumnYear:           func(m *core.Movie) float64 { return float64(m.Year) },
	ColumnDuration:       func(m *core.Movie) float64 { return m.Duration },
	ColumnDurationLog:    func(m *core.Movie) float64 { return m.DurationLog },
	ColumnAvgVote:        func(m *core.Movie) float64 { return m.AvgVote },
	ColumnTotalVotes:     func(m *core.Movie) float64 { return m.TotalVotes },
	ColumnWeightedRating: func(m *core.Movie) float64 { return m.WeightedRating },
	ColumnGenreEncoded:   func(m *core.Movie) float64 { return m.GenreCode },
	ColumnHumor:          func(m *core.Movie) float64 { return m.Humor },
	ColumnRhythm:         func(m *core.Movie) float64 { return m.Rhythm },
	ColumnEffort:         func(m *core.Movie) float64 { return m.Effort },
	ColumnTension:        func(m *core.Movie) float64 { return m.Tension },
	ColumnErotism:        func(m *core.Movie) float64 { return m.Erotism },
}

// TextField 返回文本列的取值函数。
func TextField(name string) (func(*core.Movie) string, bool) {
	f, ok := textFields[name]
	return f, ok
}

// NumericField 返回数值列的取值函数。
func NumericField(name string) (func(*core.Movie) float64, bool) {
	f, ok := numericFields[name]
	return f, ok
}
