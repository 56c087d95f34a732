package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pr-review-toolkit/review-runner/pkg/chunker"
)

func TestFormatCommentEmpty(t *testing.T) {
	body := FormatComment(nil, nil, "abc123")

	assert.Contains(t, body, "No issues found")
	assert.Contains(t, body, "<!-- review-runner:sha=abc123 -->")
	assert.NotContains(t, body, "not fully reviewed")
}

func TestFormatCommentSuggestions(t *testing.T) {
	suggestions := []Suggestion{
		{
			File:         "src/app.go",
			Language:     "go",
			Content:      "Check the error.",
			ExistingCode: "v, _ := do()",
			ImprovedCode: "v, err := do()",
			Summary:      "Unchecked error",
			LineStart:    10,
			LineEnd:      12,
			Label:        "bug",
			Severity:     SeverityHigh,
		},
	}

	body := FormatComment(suggestions, nil, "abc123")

	assert.Contains(t, body, "Found 1 suggestion(s)")
	assert.Contains(t, body, "Unchecked error")
	assert.Contains(t, body, "`src/app.go` (lines 10-12)")
	assert.Contains(t, body, "**Category:** bug | **Severity:** high")
	assert.Contains(t, body, "```go\nv, _ := do()\n```")
	assert.Contains(t, body, "```go\nv, err := do()\n```")
}

func TestFormatCommentExcludedFiles(t *testing.T) {
	excluded := []chunker.FileChange{
		{Filename: "vendor/big.go"},
		{Filename: "generated/api.pb.go"},
	}

	body := FormatComment(nil, excluded, "abc123")

	assert.Contains(t, body, "2 file(s) were not fully reviewed")
	assert.Contains(t, body, "`vendor/big.go`")
	assert.Contains(t, body, "`generated/api.pb.go`")
}

func TestFormatCommentOrderPreserved(t *testing.T) {
	suggestions := []Suggestion{
		{Content: "first", Summary: "first finding", Severity: SeverityCritical},
		{Content: "second", Summary: "second finding", Severity: SeverityLow},
	}

	body := FormatComment(suggestions, nil, "sha")
	assert.Less(t, strings.Index(body, "first finding"), strings.Index(body, "second finding"))
	assert.Contains(t, body, "### 1. 🔴 first finding")
	assert.Contains(t, body, "### 2. 🟢 second finding")
}

func TestBuildSystemPromptLevels(t *testing.T) {
	strict := BuildSystemPrompt("strict", "en-US", Options{Bug: true})
	gentle := BuildSystemPrompt("gentle", "en-US", Options{Bug: true})
	fallback := BuildSystemPrompt("bogus", "en-US", Options{Bug: true})

	assert.NotEqual(t, strict, gentle)
	assert.Equal(t, BuildSystemPrompt("normal", "en-US", Options{Bug: true}), fallback)
	assert.Contains(t, strict, "bug")
	assert.NotContains(t, strict, "performance")
}

func TestBuildSystemPromptExtras(t *testing.T) {
	prompt := BuildSystemPrompt("normal", "zh-CN", Options{}, "Focus on concurrency.", "  ")

	assert.Contains(t, prompt, "zh-CN")
	assert.Contains(t, prompt, "Focus on concurrency.")
	// All categories enabled when none are toggled on.
	assert.Contains(t, prompt, "bug, performance, security")
}

func TestBuildReviewPrompt(t *testing.T) {
	prompt := BuildReviewPrompt("Fix login", "main", "feature", "## File: a.go\n+code")

	assert.Contains(t, prompt, "Title: Fix login")
	assert.Contains(t, prompt, "feature -> main")
	assert.Contains(t, prompt, "## File: a.go")
	assert.Contains(t, prompt, "relevant_file")
}
