package review

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-review-toolkit/review-runner/pkg/ai"
	"github.com/pr-review-toolkit/review-runner/pkg/config"
	"github.com/pr-review-toolkit/review-runner/pkg/platform"
)

const fakeDiff = `diff --git a/src/handler.go b/src/handler.go
--- a/src/handler.go
+++ b/src/handler.go
@@ -1,3 +1,4 @@
 func handle() {
+	doWork()
 }
`

type fakePlatform struct {
	diff     string
	info     *platform.PRInfo
	files    map[string]string
	comments []platform.CommentOptions
	diffErr  error
}

func (f *fakePlatform) Name() string { return "fake" }

func (f *fakePlatform) GetDiff(ctx context.Context, prID int) (string, error) {
	return f.diff, f.diffErr
}

func (f *fakePlatform) GetPRInfo(ctx context.Context, prID int) (*platform.PRInfo, error) {
	return f.info, nil
}

func (f *fakePlatform) GetFile(ctx context.Context, path, ref string) (string, error) {
	if content, ok := f.files[path]; ok {
		return content, nil
	}
	return "", platform.ErrNotFound
}

func (f *fakePlatform) PostComment(ctx context.Context, opts platform.CommentOptions) error {
	f.comments = append(f.comments, opts)
	return nil
}

type fakeChat struct {
	model    string
	reply    string
	err      error
	messages []ai.Message
}

func (f *fakeChat) Model() string         { return f.model }
func (f *fakeChat) SetModel(model string) { f.model = model }

func (f *fakeChat) Chat(ctx context.Context, messages []ai.Message, opts ai.ChatOptions) (string, error) {
	f.messages = messages
	return f.reply, f.err
}

func testAction() config.ActionConfig {
	return config.ActionConfig{
		APIKey:         "k",
		Model:          "kimi-k2-turbo-preview",
		Language:       "en-US",
		ReviewLevel:    "normal",
		MaxFiles:       50,
		MaxSuggestions: 20,
	}
}

func testReviewer(host platform.Platform, chat ChatClient) *Reviewer {
	return NewReviewer(testAction(), host, chat, zerolog.Nop())
}

func TestRunPostsReview(t *testing.T) {
	host := &fakePlatform{
		diff: fakeDiff,
		info: &platform.PRInfo{Number: 7, Title: "Add worker", BaseBranch: "main", HeadBranch: "feat", HeadSHA: "abc123"},
	}
	chat := &fakeChat{
		model: "kimi-k2-turbo-preview",
		reply: `[{"relevant_file": "src/handler.go", "suggestion_content": "doWork may fail", "one_sentence_summary": "Missing error handling", "label": "bug", "severity": "high"}]`,
	}

	result, err := testReviewer(host, chat).Run(context.Background(), 7)
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.True(t, result.Posted)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "Missing error handling", result.Suggestions[0].Summary)

	require.Len(t, host.comments, 1)
	assert.Equal(t, 7, host.comments[0].PRID)
	assert.Contains(t, host.comments[0].Body, "Missing error handling")
	assert.Contains(t, host.comments[0].Body, "review-runner:sha=abc123")

	// System prompt first, then the diff payload.
	require.Len(t, chat.messages, 2)
	assert.Equal(t, ai.RoleSystem, chat.messages[0].Role)
	assert.Contains(t, chat.messages[1].Content, "## File: src/handler.go")
}

func TestRunSkipsEmptyDiff(t *testing.T) {
	host := &fakePlatform{
		diff: "",
		info: &platform.PRInfo{Number: 1},
	}
	chat := &fakeChat{model: "kimi-k2-turbo-preview"}

	result, err := testReviewer(host, chat).Run(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Empty(t, host.comments)
}

func TestRunHonorsRepoConfigDisabled(t *testing.T) {
	host := &fakePlatform{
		diff:  fakeDiff,
		info:  &platform.PRInfo{Number: 1, HeadSHA: "abc"},
		files: map[string]string{".review-config.yml": "enabled: false\n"},
	}
	chat := &fakeChat{model: "kimi-k2-turbo-preview"}

	result, err := testReviewer(host, chat).Run(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Contains(t, result.SkipReason, "disabled")
	assert.Empty(t, host.comments)
}

func TestRunBrokenRepoConfigFallsBackToDefaults(t *testing.T) {
	host := &fakePlatform{
		diff:  fakeDiff,
		info:  &platform.PRInfo{Number: 1, HeadSHA: "abc"},
		files: map[string]string{".review-config.yml": "enabled: [not, a, bool]\n"},
	}
	chat := &fakeChat{model: "kimi-k2-turbo-preview", reply: "[]"}

	result, err := testReviewer(host, chat).Run(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.True(t, result.Posted)
}

func TestRunRepoIgnoreFilesExcludeEverything(t *testing.T) {
	host := &fakePlatform{
		diff:  fakeDiff,
		info:  &platform.PRInfo{Number: 1, HeadSHA: "abc"},
		files: map[string]string{".review-config.yaml": "ignore_files:\n  - \"*.go\"\n"},
	}
	chat := &fakeChat{model: "kimi-k2-turbo-preview"}

	result, err := testReviewer(host, chat).Run(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Contains(t, result.SkipReason, "no reviewable files")
}

func TestRunDryRunSkipsPosting(t *testing.T) {
	host := &fakePlatform{
		diff: fakeDiff,
		info: &platform.PRInfo{Number: 1, HeadSHA: "abc"},
	}
	chat := &fakeChat{model: "kimi-k2-turbo-preview", reply: "[]"}

	r := testReviewer(host, chat)
	r.DryRun = true

	result, err := r.Run(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, result.Posted)
	assert.NotEmpty(t, result.Comment)
	assert.Empty(t, host.comments)
}

func TestRunPropagatesFetchError(t *testing.T) {
	host := &fakePlatform{
		diffErr: assert.AnError,
		info:    &platform.PRInfo{Number: 1},
	}
	chat := &fakeChat{model: "kimi-k2-turbo-preview"}

	_, err := testReviewer(host, chat).Run(context.Background(), 1)
	assert.Error(t, err)
}
