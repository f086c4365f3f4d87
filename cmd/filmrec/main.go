// Command filmrec 是基于内容的电影推荐命令行工具。
package main

import (
	"os"

	_ "github.com/rushteam/filmrec/config/builders"
)

func main() {
	rootCmd.SetOut(os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
