package review

import (
	"fmt"
	"strings"
)

var levelInstructions = map[string]string{
	"strict": "Be thorough and exacting. Flag every defect you find, including style and maintainability issues, and hold the code to a high bar.",
	"normal": "Focus on correctness, security, and performance problems that matter. Skip purely stylistic nits.",
	"gentle": "Only raise significant bugs, security holes, or serious performance problems. Keep the tone encouraging.",
}

// BuildSystemPrompt assembles the system prompt for a review from the
// configured level, output language, enabled categories, and any extra
// instructions from the action or repository configuration.
func BuildSystemPrompt(level, language string, opts Options, extra ...string) string {
	instruction, ok := levelInstructions[level]
	if !ok {
		instruction = levelInstructions["normal"]
	}

	var categories []string
	if opts.Bug {
		categories = append(categories, "bug")
	}
	if opts.Performance {
		categories = append(categories, "performance")
	}
	if opts.Security {
		categories = append(categories, "security")
	}
	if len(categories) == 0 {
		categories = []string{"bug", "performance", "security"}
	}

	var b strings.Builder
	b.WriteString("You are an expert code reviewer analyzing a pull request.\n\n")
	b.WriteString(instruction)
	b.WriteString("\n\nOnly report findings in these categories: ")
	b.WriteString(strings.Join(categories, ", "))
	b.WriteString(".\n")
	fmt.Fprintf(&b, "Write all suggestion text in %s.\n", language)

	for _, e := range extra {
		if strings.TrimSpace(e) != "" {
			b.WriteString("\nAdditional instructions:\n")
			b.WriteString(strings.TrimSpace(e))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// BuildReviewPrompt assembles the user prompt containing the PR context and
// the budgeted diff payload, plus the JSON output contract the parser
// expects.
func BuildReviewPrompt(title, baseBranch, headBranch, payload string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Review the following pull request.\n\nTitle: %s\nBranch: %s -> %s\n\n", title, headBranch, baseBranch)
	b.WriteString("Changed files:\n\n")
	b.WriteString(payload)
	b.WriteString("\n\n")
	b.WriteString(`Respond with a JSON array of suggestions. Each element must have exactly these fields:

[
  {
    "relevant_file": "path/to/file",
    "language": "go",
    "suggestion_content": "what is wrong and how to fix it",
    "existing_code": "the problematic lines",
    "improved_code": "the corrected lines",
    "one_sentence_summary": "short summary",
    "relevant_lines_start": 10,
    "relevant_lines_end": 12,
    "label": "bug|performance|security",
    "severity": "critical|high|medium|low"
  }
]

Return an empty array [] if the changes look good. Do not include any text outside the JSON array.`)
	return b.String()
}

// maxDescriptionChars bounds how much of the PR body goes into the ask
// prompt; descriptions can be arbitrarily long.
const maxDescriptionChars = 2000

// BuildAskPrompt assembles the user prompt for a free-form question about
// the pull request.
func BuildAskPrompt(title, description, payload, question string) string {
	desc := strings.TrimSpace(description)
	if runes := []rune(desc); len(runes) > maxDescriptionChars {
		desc = string(runes[:maxDescriptionChars])
	}
	if desc == "" {
		desc = "None"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Answer a question about the following pull request.\n\nTitle: %s\nDescription: %s\n\n", title, desc)
	b.WriteString("Changed files:\n\n")
	b.WriteString(payload)
	b.WriteString("\n\n## Question\n")
	b.WriteString(question)
	b.WriteString("\n\nAnswer the question above based on the changes. Be concise and helpful.")
	return b.String()
}
