// Package main provides the review-runner CLI application.
package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pr-review-toolkit/review-runner/pkg/version"
)

// log is the process-wide logger, configured in Execute before any command
// runs.
var log zerolog.Logger

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "review-runner",
	Short: "AI-powered pull request reviewer",
	Long: `review-runner reviews pull requests with an AI model.

It fetches the PR diff, selects the changed files that fit the model's
token budget, asks the model for findings, and posts the result back as
a review comment.`,
	Version: version.FullString(),
}

var verbose bool

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(logger zerolog.Logger) error {
	log = logger
	cobra.OnInitialize(func() {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	})
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}
