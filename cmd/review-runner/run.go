// Package main provides the review-runner CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pr-review-toolkit/review-runner/pkg/ai"
	"github.com/pr-review-toolkit/review-runner/pkg/config"
	"github.com/pr-review-toolkit/review-runner/pkg/platform"
	"github.com/pr-review-toolkit/review-runner/pkg/review"
)

// runFlags holds the flags for the run command
type runFlags struct {
	pr     int
	repo   string
	dryRun bool
}

var runOpts runFlags

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Review a pull request",
	Long: `Review a pull request and post the findings as a comment.

Configuration is read from INPUT_* environment variables, matching the
inputs of the GitHub Action wrapper. A .review-config.yml on the PR head
can further tune the review per repository.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runOpts.pr <= 0 {
			return fmt.Errorf("--pr is required")
		}
		repo := runOpts.repo
		if repo == "" {
			repo = os.Getenv("GITHUB_REPOSITORY")
		}
		if repo == "" {
			return fmt.Errorf("--repo or GITHUB_REPOSITORY is required")
		}

		cfg, err := config.LoadActionConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		chat, err := ai.NewClient(cfg.APIKey, cfg.BaseURL, cfg.Model, log)
		if err != nil {
			return err
		}
		host := platform.NewGitHubClient(cfg.GitHubToken, repo, log)

		reviewer := review.NewReviewer(cfg, host, chat, log)
		reviewer.DryRun = runOpts.dryRun

		result, err := reviewer.Run(cmd.Context(), runOpts.pr)
		if err != nil {
			return err
		}

		if result.Skipped {
			log.Info().Str("reason", result.SkipReason).Msg("review skipped")
			return nil
		}
		if runOpts.dryRun {
			fmt.Println(result.Comment)
		}
		log.Info().
			Str("model", result.Model).
			Int("suggestions", len(result.Suggestions)).
			Int("excluded_files", len(result.ExcludedFiles)).
			Msg("review complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Local flags for the run command
	runCmd.Flags().IntVar(&runOpts.pr, "pr", 0, "Pull request number to review")
	runCmd.Flags().StringVar(&runOpts.repo, "repo", "", "Repository in owner/repo form (defaults to GITHUB_REPOSITORY)")
	runCmd.Flags().BoolVar(&runOpts.dryRun, "dry-run", false, "Print the review instead of posting it")
}
