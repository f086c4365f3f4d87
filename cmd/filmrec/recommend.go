package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rushteam/filmrec/recommender"
)

var (
	recLiked    []int64
	recDisliked []int64
	recUser     string
	recK        int
	recFilters  filterFlags
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend movies from liked and disliked titles",
	Long: `Builds a taste profile from the liked movies (minus the disliked ones) and
returns the nearest unrated movies that pass the filters, closest first.

Ratings come from --liked/--disliked, or from the rating store with --user.`,
	Example: `  filmrec recommend --liked 12,48 --disliked 7 --genre Drama --start-year 1990
  filmrec recommend --user alice -k 10`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().Int64SliceVarP(&recLiked, "liked", "l", nil, "liked movie ids")
	recommendCmd.Flags().Int64SliceVarP(&recDisliked, "disliked", "d", nil, "disliked movie ids")
	recommendCmd.Flags().StringVarP(&recUser, "user", "u", "", "read liked/disliked ids from the rating store")
	recommendCmd.Flags().IntVarP(&recK, "num", "k", 0, "number of recommendations (default from config)")
	recommendCmd.MarkFlagsMutuallyExclusive("user", "liked")
	recommendCmd.MarkFlagsMutuallyExclusive("user", "disliked")
	recFilters.register(recommendCmd)
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	constraints, err := recFilters.constraints(cmd)
	if err != nil {
		return err
	}

	var res recommender.Result
	if recUser != "" {
		res, err = svc.RecommendForUser(ctx, recUser, constraints, recK)
	} else {
		res, err = svc.Recommend(ctx, recommender.Request{
			LikedIDs:    recLiked,
			DislikedIDs: recDisliked,
			Constraints: constraints,
			K:           recK,
		})
	}
	if err != nil {
		return err
	}

	if jsonOut {
		if err := printJSON(cmd, res); err != nil {
			return err
		}
	}

	switch res.Status {
	case recommender.StatusInvalidInput:
		return errors.New(res.Err.Error())
	case recommender.StatusEmpty:
		if !jsonOut {
			cmd.Printf("No recommendations (%s).\n", res.Reason)
		}
		return nil
	}
	if jsonOut {
		return nil
	}

	movies, err := svc.Lookup(ctx, res.IDs)
	if err != nil {
		return err
	}
	views := movieViews(movies)
	for i := range views {
		views[i].Distance = &res.Neighbors[i].Distance
	}
	printMovies(cmd, views)
	return nil
}
