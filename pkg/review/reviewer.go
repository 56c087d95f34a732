package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pr-review-toolkit/review-runner/pkg/ai"
	"github.com/pr-review-toolkit/review-runner/pkg/chunker"
	"github.com/pr-review-toolkit/review-runner/pkg/config"
	"github.com/pr-review-toolkit/review-runner/pkg/filefilter"
	"github.com/pr-review-toolkit/review-runner/pkg/platform"
	"github.com/pr-review-toolkit/review-runner/pkg/tokens"
)

// repoConfigPaths are tried in order when looking up the per-repository
// configuration file on the PR head.
var repoConfigPaths = []string{".review-config.yml", ".review-config.yaml"}

// ChatClient is the slice of the ai.Client surface the reviewer needs.
type ChatClient interface {
	Model() string
	SetModel(model string)
	Chat(ctx context.Context, messages []ai.Message, opts ai.ChatOptions) (string, error)
}

// Result summarizes a completed review run.
type Result struct {
	RunID         string
	Model         string
	Suggestions   []Suggestion
	Discarded     []Suggestion
	ExcludedFiles []string
	Comment       string
	Posted        bool
	Skipped       bool
	SkipReason    string
}

// Reviewer runs the end-to-end review pipeline for one pull request.
type Reviewer struct {
	action   config.ActionConfig
	host     platform.Platform
	chat     ChatClient
	profiles map[string]tokens.ModelProfile
	fallback []string
	budget   tokens.BudgetConfig
	chunkCfg chunker.Config
	logger   zerolog.Logger

	// DryRun skips posting the comment; the rendered body is still
	// returned in the result.
	DryRun bool
}

// NewReviewer wires a reviewer from its collaborators. The default model
// profiles, fallback chain, budget, and chunker configuration are used; they
// are fields only so tests can narrow them.
func NewReviewer(action config.ActionConfig, host platform.Platform, chat ChatClient, logger zerolog.Logger) *Reviewer {
	return &Reviewer{
		action:   action,
		host:     host,
		chat:     chat,
		profiles: config.DefaultProfiles(),
		fallback: config.DefaultFallbackChain(),
		budget:   config.DefaultBudget(),
		chunkCfg: config.DefaultChunkerConfig(),
		logger:   logger,
	}
}

// Run reviews the pull request and posts the resulting comment.
func (r *Reviewer) Run(ctx context.Context, prID int) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	logger := r.logger.With().Str("run_id", result.RunID).Int("pr", prID).Logger()
	logger.Info().Str("platform", r.host.Name()).Msg("starting review")

	diff, info, err := r.fetchPR(ctx, prID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch PR data: %w", err)
	}

	if diff == "" {
		result.Skipped = true
		result.SkipReason = "empty diff"
		logger.Info().Msg("nothing to review, diff is empty")
		return result, nil
	}

	repoCfg := r.loadRepoConfig(ctx, info.HeadSHA, logger)
	if !repoCfg.Enabled {
		result.Skipped = true
		result.SkipReason = "reviews disabled by repository config"
		logger.Info().Msg("reviews disabled by repository config")
		return result, nil
	}

	included, excluded := r.budgetDiff(diff, repoCfg, logger)
	if len(included) == 0 {
		result.Skipped = true
		result.SkipReason = "no reviewable files in diff"
		logger.Info().Msg("no reviewable files after filtering and budgeting")
		return result, nil
	}
	for _, fc := range excluded {
		result.ExcludedFiles = append(result.ExcludedFiles, fc.Filename)
	}
	result.Model = r.chat.Model()

	payload := chunker.Render(included)
	opts := Options{
		Bug:         repoCfg.EnableBug,
		Performance: repoCfg.EnablePerformance,
		Security:    repoCfg.EnableSecurity,
	}

	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: BuildSystemPrompt(
			r.action.ReviewLevel, r.action.Language, opts,
			r.action.ExtraInstructions, repoCfg.ExtraInstructions,
		)},
		{Role: ai.RoleUser, Content: BuildReviewPrompt(info.Title, info.BaseBranch, info.HeadBranch, payload)},
	}

	maxOutput := 0
	if p, ok := r.profiles[r.chat.Model()]; ok {
		maxOutput = p.MaxOutputTokens
	}
	reply, err := r.chat.Chat(ctx, messages, ai.ChatOptions{MaxTokens: maxOutput})
	if err != nil {
		return nil, fmt.Errorf("review generation failed: %w", err)
	}

	suggestions, err := ParseSuggestions(reply)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	logger.Info().Int("raw_suggestions", len(suggestions)).Msg("parsed model response")

	service := NewService(Control{
		MaxSuggestions: r.action.MaxSuggestions,
		MinSeverity:    DefaultControl().MinSeverity,
	})
	result.Suggestions, result.Discarded = service.Process(suggestions, opts, diff)
	logger.Info().
		Int("kept", len(result.Suggestions)).
		Int("discarded", len(result.Discarded)).
		Msg("processed suggestions")

	result.Comment = FormatComment(result.Suggestions, excluded, info.HeadSHA)
	if r.DryRun {
		logger.Info().Msg("dry run, skipping comment")
		return result, nil
	}

	if err := r.host.PostComment(ctx, platform.CommentOptions{PRID: prID, Body: result.Comment}); err != nil {
		return nil, fmt.Errorf("failed to post review: %w", err)
	}
	result.Posted = true
	logger.Info().Msg("review posted")
	return result, nil
}

// fetchPR retrieves the diff and metadata for a pull request concurrently.
func (r *Reviewer) fetchPR(ctx context.Context, prID int) (string, *platform.PRInfo, error) {
	var (
		diff string
		info *platform.PRInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		diff, err = r.host.GetDiff(gctx, prID)
		return err
	})
	g.Go(func() error {
		var err error
		info, err = r.host.GetPRInfo(gctx, prID)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", nil, err
	}
	return diff, info, nil
}

// loadRepoConfig fetches and parses the per-repository configuration from the
// PR head. A missing or broken file never fails the run.
func (r *Reviewer) loadRepoConfig(ctx context.Context, ref string, logger zerolog.Logger) config.RepoConfig {
	for _, path := range repoConfigPaths {
		content, err := r.host.GetFile(ctx, path, ref)
		if errors.Is(err, platform.ErrNotFound) {
			continue
		}
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("failed to fetch repo config, using defaults")
			return config.DefaultRepoConfig()
		}

		cfg, validation := config.ParseRepoConfig(content)
		for _, w := range validation.Warnings {
			logger.Warn().Str("path", path).Msg("repo config: " + w)
		}
		for _, e := range validation.Errors {
			logger.Warn().Str("path", path).Msg("repo config invalid, using defaults: " + e)
		}
		return cfg
	}
	return config.DefaultRepoConfig()
}

// budgetDiff selects the model, derives the token budget, and chunks the diff
// into the records that fit.
func (r *Reviewer) budgetDiff(diff string, repoCfg config.RepoConfig, logger zerolog.Logger) (included, excluded []chunker.FileChange) {
	estimated := tokens.Count(diff)

	profile, fits := ai.SelectProfile(r.profiles, r.fallback, r.budget, r.chat.Model(), estimated)
	if !fits {
		logger.Warn().
			Int("estimated_tokens", estimated).
			Str("model", profile.Name).
			Msg("diff exceeds every model budget, relying on chunking")
	}
	r.chat.SetModel(profile.Name)

	available := r.budget.AvailableTokens(profile)
	if available == 0 {
		logger.Warn().Str("model", profile.Name).Msg("token budget clamped to zero")
	}
	logger.Info().
		Int("estimated_tokens", estimated).
		Int("available_tokens", available).
		Str("model", profile.Name).
		Msg("derived token budget")

	patterns := append([]string(nil), r.action.ExcludePatterns...)
	patterns = append(patterns, repoCfg.IgnoreFiles...)
	filter := filefilter.New(patterns, config.BinaryExtensions())

	chunkCfg := r.chunkCfg
	chunkCfg.MinUsefulChunkTokens = r.budget.MinUsefulChunkTokens

	return chunker.New(chunkCfg, filter).Chunk(diff, available, r.action.MaxFiles)
}
