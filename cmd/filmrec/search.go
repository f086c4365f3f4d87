package main

import (
	"github.com/spf13/cobra"
)

var (
	searchLimit   int
	searchFilters filterFlags
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "List catalog movies matching the filters",
	Long: `Lists movies that satisfy every given filter, in catalog order.
Useful for finding movie ids to like or dislike.`,
	Example: `  filmrec search --title godfather
  filmrec search --director "Sergio Leone" --min-duration 120`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results (0 for all)")
	searchFilters.register(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	constraints, err := searchFilters.constraints(cmd)
	if err != nil {
		return err
	}
	movies, err := svc.Search(commandContext(cmd), constraints, searchLimit)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(cmd, movieViews(movies))
	}
	printMovies(cmd, movieViews(movies))
	return nil
}
