package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/pr-review-toolkit/review-runner/pkg/ai"
	"github.com/pr-review-toolkit/review-runner/pkg/chunker"
)

// Ask answers a free-form question about the pull request. The diff goes
// through the same filtering and budgeting as a review; the reply is the
// formatted markdown comment body, which the caller posts.
func (r *Reviewer) Ask(ctx context.Context, prID int, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("question is required")
	}

	logger := r.logger.With().Int("pr", prID).Logger()
	logger.Info().Msg("answering question")

	diff, info, err := r.fetchPR(ctx, prID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch PR data: %w", err)
	}
	if diff == "" {
		return FormatAnswer("Unable to get PR changes."), nil
	}

	// Commands are explicit user requests, so the enabled toggle does not
	// gate them; the config's ignore patterns still apply.
	repoCfg := r.loadRepoConfig(ctx, info.HeadSHA, logger)
	included, _ := r.budgetDiff(diff, repoCfg, logger)
	payload := chunker.Render(included)

	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: fmt.Sprintf(
			"You are an expert code reviewer answering questions about a pull request. Be concise and helpful. Write your answer in %s.",
			r.action.Language,
		)},
		{Role: ai.RoleUser, Content: BuildAskPrompt(info.Title, info.Body, payload, question)},
	}

	maxOutput := 0
	if p, ok := r.profiles[r.chat.Model()]; ok {
		maxOutput = p.MaxOutputTokens
	}
	reply, err := r.chat.Chat(ctx, messages, ai.ChatOptions{MaxTokens: maxOutput})
	if err != nil {
		return "", fmt.Errorf("failed to answer question: %w", err)
	}

	logger.Info().Msg("question answered")
	return FormatAnswer(reply), nil
}

// FormatAnswer renders an /ask reply as a markdown comment body.
func FormatAnswer(answer string) string {
	var b strings.Builder
	b.WriteString("## 🤖 Answer\n\n")
	b.WriteString(strings.TrimSpace(answer))
	b.WriteString("\n\n---\n*Generated by review-runner — use `/ask <question>` to continue asking*\n")
	return b.String()
}
