// Package main provides the review-runner CLI application.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pr-review-toolkit/review-runner/pkg/ai"
	"github.com/pr-review-toolkit/review-runner/pkg/config"
	"github.com/pr-review-toolkit/review-runner/pkg/platform"
	"github.com/pr-review-toolkit/review-runner/pkg/review"
)

// eventCmd represents the event command, the entry point when running as a
// GitHub Action.
var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Handle a GitHub Actions event",
	Long: `Handle the GitHub event the workflow was triggered by.

Reads GITHUB_EVENT_NAME and the payload at GITHUB_EVENT_PATH, then routes:
pull_request events run an automatic review (unless INPUT_AUTO_REVIEW is
false); issue_comment events dispatch /review, /ask and /help commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eventName := os.Getenv("GITHUB_EVENT_NAME")
		eventPath := os.Getenv("GITHUB_EVENT_PATH")
		if eventPath == "" {
			return fmt.Errorf("GITHUB_EVENT_PATH is not set")
		}

		ev, err := platform.LoadEvent(eventPath)
		if err != nil {
			return err
		}
		repo := ev.Repository.FullName
		if repo == "" {
			repo = os.Getenv("GITHUB_REPOSITORY")
		}
		if repo == "" {
			return fmt.Errorf("event payload has no repository and GITHUB_REPOSITORY is not set")
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

		log.Info().Str("event", eventName).Str("repo", repo).Msg("handling event")

		switch eventName {
		case "pull_request", "pull_request_target":
			if !cfg.AutoReview {
				log.Info().Msg("auto review disabled, skipping")
				return nil
			}
			_, err := reviewer.Run(cmd.Context(), ev.PRNumber())
			return err

		case "issue_comment":
			return handleCommentEvent(cmd.Context(), reviewer, host, ev)

		default:
			log.Warn().Str("event", eventName).Msg("unsupported event, skipping")
			return nil
		}
	},
}

// handleCommentEvent dispatches slash commands from PR comments.
func handleCommentEvent(ctx context.Context, reviewer *review.Reviewer, host *platform.GitHubClient, ev *platform.Event) error {
	if ev.Action != "created" && ev.Action != "edited" {
		return nil
	}
	if !ev.IsPullRequestComment() {
		log.Info().Msg("not a PR comment, skipping")
		return nil
	}

	command, cmdArgs, ok := review.ParseCommand(ev.Comment.Body)
	if !ok {
		return nil
	}
	prID := ev.PRNumber()
	log.Info().Str("command", command).Int("pr", prID).Msg("dispatching command")

	// Best effort: signal that the command was picked up.
	if err := host.AddReaction(ctx, ev.Comment.ID, "eyes"); err != nil {
		log.Warn().Err(err).Msg("failed to add reaction")
	}

	var result string
	switch command {
	case "review":
		_, err := reviewer.Run(ctx, prID)
		return err

	case "ask":
		if cmdArgs == "" {
			result = "Please provide a question, e.g.: `/ask What does this function do?`"
		} else {
			answer, err := reviewer.Ask(ctx, prID, cmdArgs)
			if err != nil {
				return err
			}
			result = answer
		}

	case "help":
		result = review.HelpMessage()

	default:
		result = fmt.Sprintf("Unknown command: `/%s`\n\nUse `/help` to see available commands.", command)
	}

	quoted := "/" + command
	if cmdArgs != "" {
		quoted += " " + cmdArgs
	}
	return host.PostComment(ctx, platform.CommentOptions{
		PRID: prID,
		Body: "> " + quoted + "\n\n" + result,
	})
}

func init() {
	rootCmd.AddCommand(eventCmd)
}
