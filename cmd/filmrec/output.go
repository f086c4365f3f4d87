package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rushteam/filmrec/core"
)

// movieView 是影片的输出形式
type movieView struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Genres   []string `json:"genres"`
	Duration float64  `json:"duration"`
	AvgVote  float64  `json:"avg_vote"`
	Distance *float64 `json:"distance,omitempty"`
}

func newMovieView(m *core.Movie) movieView {
	return movieView{
		ID:       m.ID,
		Title:    m.Title,
		Year:     m.Year,
		Genres:   m.Genres,
		Duration: m.Duration,
		AvgVote:  m.AvgVote,
	}
}

func movieViews(movies []*core.Movie) []movieView {
	out := make([]movieView, len(movies))
	for i, m := range movies {
		out[i] = newMovieView(m)
	}
	return out
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printMovies(cmd *cobra.Command, movies []movieView) {
	if len(movies) == 0 {
		cmd.Println("No movies found.")
		return
	}
	for i, m := range movies {
		line := fmt.Sprintf("  [%d] %s (%d) #%d", i+1, m.Title, m.Year, m.ID)
		if m.Distance != nil {
			line += fmt.Sprintf("  distance %.4f", *m.Distance)
		}
		cmd.Println(line)
		cmd.Printf("      %s, %.0f min, vote %.1f\n", strings.Join(m.Genres, "/"), m.Duration, m.AvgVote)
	}
}
