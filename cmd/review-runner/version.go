// Package main provides the review-runner CLI application.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pr-review-toolkit/review-runner/pkg/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display detailed version information including build date, git commit, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Info()
		fmt.Printf("review-runner %s\n", info["version"])
		fmt.Printf("  commit:     %s\n", info["gitCommit"])
		fmt.Printf("  built:      %s\n", info["buildDate"])
		fmt.Printf("  go version: %s\n", info["goVersion"])
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
