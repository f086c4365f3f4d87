package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rushteam/filmrec/catalog"
)

var (
	seedSize    int
	seedMinVote float64
	seedValue   uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Sample well rated movies to start rating",
	Long: `Picks a random sample of well rated movies for a new user to rate.
The same --seed always returns the same sample.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVarP(&seedSize, "size", "n", catalog.DefaultSampleSize, "number of movies")
	seedCmd.Flags().Float64Var(&seedMinVote, "min-vote", catalog.DefaultSampleMinVote, "minimum average vote")
	seedCmd.Flags().Uint64Var(&seedValue, "seed", 0, "random seed (default: current time)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	seed := seedValue
	if !cmd.Flags().Changed("seed") {
		seed = uint64(time.Now().UnixNano())
	}
	movies, err := svc.Seed(commandContext(cmd), seedSize, seedMinVote, seed)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(cmd, movieViews(movies))
	}
	printMovies(cmd, movieViews(movies))
	return nil
}
