package review

import (
	"fmt"
	"strings"

	"github.com/pr-review-toolkit/review-runner/pkg/chunker"
)

// commentMarker tags posted comments so a rerun can recognize its own output.
const commentMarker = "<!-- review-runner:sha=%s -->"

var severityEmoji = map[Severity]string{
	SeverityCritical: "🔴",
	SeverityHigh:     "🟠",
	SeverityMedium:   "🟡",
	SeverityLow:      "🟢",
}

// FormatComment renders the review as a markdown comment. Files the budget
// excluded from the review are listed so readers know what was not covered.
func FormatComment(suggestions []Suggestion, excluded []chunker.FileChange, headSHA string) string {
	var b strings.Builder

	b.WriteString("## 🤖 Code Review\n\n")

	if len(suggestions) == 0 {
		b.WriteString("No issues found. The changes look good! ✅\n")
	} else {
		fmt.Fprintf(&b, "Found %d suggestion(s):\n\n", len(suggestions))
		for i, sg := range suggestions {
			emoji := severityEmoji[sg.Severity]
			if emoji == "" {
				emoji = severityEmoji[SeverityMedium]
			}

			title := sg.Summary
			if title == "" {
				title = sg.Content
			}
			fmt.Fprintf(&b, "### %d. %s %s\n\n", i+1, emoji, title)

			if sg.File != "" {
				if sg.LineStart > 0 {
					fmt.Fprintf(&b, "**File:** `%s` (lines %d-%d)\n\n", sg.File, sg.LineStart, sg.LineEnd)
				} else {
					fmt.Fprintf(&b, "**File:** `%s`\n\n", sg.File)
				}
			}
			if sg.Label != "" {
				fmt.Fprintf(&b, "**Category:** %s | **Severity:** %s\n\n", sg.Label, sg.Severity)
			}

			b.WriteString(sg.Content)
			b.WriteString("\n")

			if sg.ExistingCode != "" && sg.ImprovedCode != "" {
				lang := sg.Language
				fmt.Fprintf(&b, "\n**Before:**\n```%s\n%s\n```\n", lang, strings.TrimRight(sg.ExistingCode, "\n"))
				fmt.Fprintf(&b, "\n**After:**\n```%s\n%s\n```\n", lang, strings.TrimRight(sg.ImprovedCode, "\n"))
			}
			b.WriteString("\n")
		}
	}

	if len(excluded) > 0 {
		b.WriteString("---\n\n")
		fmt.Fprintf(&b, "<details>\n<summary>%d file(s) were not fully reviewed due to size limits</summary>\n\n", len(excluded))
		for _, fc := range excluded {
			fmt.Fprintf(&b, "- `%s`\n", fc.Filename)
		}
		b.WriteString("\n</details>\n\n")
	}

	b.WriteString("\n---\n*Generated by review-runner*\n")
	fmt.Fprintf(&b, commentMarker+"\n", headSHA)

	return b.String()
}
