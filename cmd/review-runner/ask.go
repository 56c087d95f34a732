// Package main provides the review-runner CLI application.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pr-review-toolkit/review-runner/pkg/ai"
	"github.com/pr-review-toolkit/review-runner/pkg/config"
	"github.com/pr-review-toolkit/review-runner/pkg/platform"
	"github.com/pr-review-toolkit/review-runner/pkg/review"
)

// askFlags holds the flags for the ask command
type askFlags struct {
	pr     int
	repo   string
	dryRun bool
}

var askOpts askFlags

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about a pull request",
	Long: `Ask a free-form question about a pull request.

The diff is budgeted the same way as for a review; the answer is posted
as a PR comment.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if askOpts.pr <= 0 {
			return fmt.Errorf("--pr is required")
		}
		repo := askOpts.repo
		if repo == "" {
			repo = os.Getenv("GITHUB_REPOSITORY")
		}
		if repo == "" {
			return fmt.Errorf("--repo or GITHUB_REPOSITORY is required")
		}
		question := strings.Join(args, " ")

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

		answer, err := reviewer.Ask(cmd.Context(), askOpts.pr, question)
		if err != nil {
			return err
		}

		if askOpts.dryRun {
			fmt.Println(answer)
			return nil
		}
		return host.PostComment(cmd.Context(), platform.CommentOptions{PRID: askOpts.pr, Body: answer})
	},
}

func init() {
	rootCmd.AddCommand(askCmd)

	// Local flags for the ask command
	askCmd.Flags().IntVar(&askOpts.pr, "pr", 0, "Pull request number")
	askCmd.Flags().StringVar(&askOpts.repo, "repo", "", "Repository in owner/repo form (defaults to GITHUB_REPOSITORY)")
	askCmd.Flags().BoolVar(&askOpts.dryRun, "dry-run", false, "Print the answer instead of posting it")
}
