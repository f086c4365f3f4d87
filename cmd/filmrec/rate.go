package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rushteam/filmrec/rating"
)

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Manage a user's liked and disliked movies",
	Long: `Stores liked and disliked movies per user in the configured rating store.
Liking a movie removes it from the disliked list and vice versa.`,
}

var rateLikeCmd = &cobra.Command{
	Use:   "like <user> <movie-id>",
	Short: "Mark a movie as liked",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRate(cmd, args, svc.Ratings().Like)
	},
}

var rateDislikeCmd = &cobra.Command{
	Use:   "dislike <user> <movie-id>",
	Short: "Mark a movie as disliked",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRate(cmd, args, svc.Ratings().Dislike)
	},
}

var rateUnrateCmd = &cobra.Command{
	Use:   "unrate <user> <movie-id>",
	Short: "Remove a movie from both lists",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRate(cmd, args, svc.Ratings().Unrate)
	},
}

var rateShowCmd = &cobra.Command{
	Use:   "show <user>",
	Short: "Show a user's ratings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := svc.Ratings().Get(commandContext(cmd), args[0])
		if err != nil {
			return err
		}
		return printRatings(cmd, r)
	},
}

var rateResetCmd = &cobra.Command{
	Use:   "reset <user>",
	Short: "Forget all of a user's ratings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.Ratings().Reset(commandContext(cmd), args[0]); err != nil {
			return err
		}
		cmd.Printf("Ratings of %s removed.\n", args[0])
		return nil
	},
}

func init() {
	rateCmd.AddCommand(rateLikeCmd, rateDislikeCmd, rateUnrateCmd, rateShowCmd, rateResetCmd)
	rootCmd.AddCommand(rateCmd)
}

type rateFunc func(ctx context.Context, userID string, movieID int64) (rating.Ratings, error)

func runRate(cmd *cobra.Command, args []string, fn rateFunc) error {
	ctx := commandContext(cmd)
	movieID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid movie id %q: %w", args[1], err)
	}
	movies, err := svc.Lookup(ctx, []int64{movieID})
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		return fmt.Errorf("movie %d not found in catalog", movieID)
	}
	r, err := fn(ctx, args[0], movieID)
	if err != nil {
		return err
	}
	return printRatings(cmd, r)
}

func printRatings(cmd *cobra.Command, r rating.Ratings) error {
	if jsonOut {
		return printJSON(cmd, r)
	}
	cmd.Printf("liked:    %v\n", r.Liked)
	cmd.Printf("disliked: %v\n", r.Disliked)
	return nil
}
