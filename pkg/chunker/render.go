package chunker

import (
	"fmt"
	"strings"
)

// Render serializes included records into the compressed payload sent to the
// model. Records are emitted in allocator order — priority order, not
// original diff order — so the most important files lead the payload.
func Render(included []FileChange) string {
	if len(included) == 0 {
		return ""
	}

	parts := make([]string, 0, len(included))
	for _, ch := range included {
		var b strings.Builder
		b.WriteString("## File: ")
		b.WriteString(ch.Filename)
		if ch.Language != "" {
			fmt.Fprintf(&b, " (%s)", ch.Language)
		}
		if ch.ChangeKind != "" {
			fmt.Fprintf(&b, " [%s]", ch.ChangeKind)
		}
		b.WriteString("\n")
		b.WriteString(ch.Content)
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}
