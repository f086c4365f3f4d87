package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var reloadCmd = &cobra.Command{
	Use:     "reload",
	Aliases: []string{"stats"},
	Short:   "Load the catalog and print its statistics",
	Args:    cobra.NoArgs,
	RunE:    runReload,
}

func init() {
	rootCmd.AddCommand(reloadCmd)
}

func runReload(cmd *cobra.Command, _ []string) error {
	st, err := svc.Reload(commandContext(cmd))
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(cmd, st)
	}
	cmd.Printf("Catalog: %s (%s)\n", appCfg.Catalog.Path, appCfg.Catalog.Source)
	cmd.Printf("  movies:     %d\n", st.Loaded)
	cmd.Printf("  dropped:    %d\n", st.Dropped)
	cmd.Printf("  duplicates: %d\n", st.Duplicates)
	cmd.Printf("  years:      %d - %d\n", st.MinYear, st.MaxYear)
	cmd.Printf("  duration:   %.0f - %.0f min\n", st.MinDuration, st.MaxDuration)
	cmd.Printf("  genres:     %s\n", strings.Join(st.Genres, ", "))
	return nil
}
