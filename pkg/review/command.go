package review

import (
	"regexp"
	"strings"
)

// commandPattern matches a slash command at the start of a comment body.
// (?s) lets the arguments span multiple lines.
var commandPattern = regexp.MustCompile(`(?s)^/(\w+)(?:\s+(.*))?$`)

// ParseCommand extracts a slash command and its arguments from a comment
// body. Commands are recognized at the very start of the body, or after
// quoted (>) lines so replies to earlier bot comments still trigger.
func ParseCommand(body string) (command, args string, ok bool) {
	if command, args, ok = matchCommand(strings.TrimSpace(body)); ok {
		return command, args, true
	}

	var kept []string
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), ">") {
			kept = append(kept, line)
		}
	}
	return matchCommand(strings.TrimSpace(strings.Join(kept, "\n")))
}

func matchCommand(s string) (string, string, bool) {
	m := commandPattern.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return strings.ToLower(m[1]), strings.TrimSpace(m[2]), true
}

// HelpMessage returns the markdown reply for the /help command.
func HelpMessage() string {
	return `## 🤖 review-runner Help

### Available Commands

| Command | Description |
|---------|-------------|
| ` + "`/review`" + ` | Run a code review of the pull request |
| ` + "`/ask <question>`" + ` | Ask a question about the PR or its changes |
| ` + "`/help`" + ` | Show this help message |

### Examples

` + "```" + `
/review
/ask What does this PR do?
/ask Why was the retry logic changed?
` + "```" + `

---
*Generated by review-runner*
`
}
