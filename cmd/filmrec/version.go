package main

import (
	"github.com/spf13/cobra"
)

// version 在构建时通过 -ldflags "-X main.version=..." 注入
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("filmrec version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
