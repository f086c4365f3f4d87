package main

import (
	"github.com/spf13/cobra"

	"github.com/rushteam/filmrec/filter"
)

// filterFlags 是 recommend 与 search 共用的硬过滤参数
type filterFlags struct {
	genres      []string
	startYear   int
	endYear     int
	minDuration int
	maxDuration int
	actor       string
	director    string
	title       string
	expr        string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVarP(&f.genres, "genre", "g", nil, "keep movies with any of these genres")
	flags.IntVar(&f.startYear, "start-year", 0, "earliest release year")
	flags.IntVar(&f.endYear, "end-year", 0, "latest release year")
	flags.IntVar(&f.minDuration, "min-duration", 0, "minimum duration in minutes")
	flags.IntVar(&f.maxDuration, "max-duration", 0, "maximum duration in minutes")
	flags.StringVar(&f.actor, "actor", "", "comma separated actor names (any match)")
	flags.StringVar(&f.director, "director", "", "comma separated director names (any match)")
	flags.StringVar(&f.title, "title", "", "title substring")
	flags.StringVar(&f.expr, "expr", "", "CEL expression over movie, e.g. 'movie.total_votes >= 100'")
}

// constraints 只把显式设置过的参数交给 filter.FromOptions
func (f *filterFlags) constraints(cmd *cobra.Command) (filter.Constraints, error) {
	flags := cmd.Flags()
	opts := make(map[string]any)
	set := func(flag, key string, v any) {
		if flags.Changed(flag) {
			opts[key] = v
		}
	}
	set("genre", filter.OptGenre, f.genres)
	set("start-year", filter.OptStartYear, f.startYear)
	set("end-year", filter.OptEndYear, f.endYear)
	set("min-duration", filter.OptMinDuration, f.minDuration)
	set("max-duration", filter.OptMaxDuration, f.maxDuration)
	set("actor", filter.OptActor, f.actor)
	set("director", filter.OptDirector, f.director)
	set("title", filter.OptTitle, f.title)
	set("expr", filter.OptExpr, f.expr)
	return filter.FromOptions(opts)
}

