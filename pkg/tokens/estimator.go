// Package tokens provides heuristic token estimation for mixed-script text
// and token budget derivation for chat-completion models.
//
// The estimator is not a real tokenizer. It applies fixed chars-per-token
// ratios per script class, which is deterministic, dependency-free, and close
// enough for budgeting diff payloads.
package tokens

import "regexp"

// Chars-per-token ratios by script class. Wide (CJK) scripts pack far more
// meaning per character than ASCII prose; code sits in between.
const (
	// wide scripts: 1.5 chars per token
	wideCharsNum, wideCharsDen = 3, 2
	// code spans: 3.5 chars per token
	codeCharsNum, codeCharsDen = 7, 2
	// everything else: 4.0 chars per token
	otherCharsPerToken = 4
)

// codeSpanPattern matches fenced code blocks and inline code spans.
// Alternation order matters: fenced blocks must win over inline spans so a
// fence is never consumed as a run of inline backticks.
var codeSpanPattern = regexp.MustCompile("(?s)```.*?```|`[^`]+`")

// TokenStats is the per-script breakdown of an estimate. It is a pure value,
// recomputed on every call.
type TokenStats struct {
	TotalTokens int
	WideTokens  int
	CodeTokens  int
	OtherTokens int
	TotalChars  int
}

// Density returns the observed chars-per-token ratio of the estimated text.
// Used by truncation to convert a token budget back into a character count.
func (s TokenStats) Density() float64 {
	if s.TotalTokens <= 0 {
		return float64(s.TotalChars)
	}
	return float64(s.TotalChars) / float64(s.TotalTokens)
}

// isWide reports whether r belongs to a CJK/wide-ideographic range.
func isWide(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
		return true
	case r >= 0x3400 && r <= 0x4DBF: // CJK Extension A
		return true
	case r >= 0x20000 && r <= 0x2A6DF: // CJK Extension B
		return true
	}
	return false
}

// Estimate returns token statistics for text. It never fails: any UTF-8
// input yields a result, and empty input yields all-zero stats.
func Estimate(text string) TokenStats {
	if text == "" {
		return TokenStats{}
	}

	totalChars := 0
	wideChars := 0
	for _, r := range text {
		totalChars++
		if isWide(r) {
			wideChars++
		}
	}

	// Characters inside code spans, minus any wide characters already
	// counted above. Matches are non-overlapping, so nothing is counted
	// twice.
	codeChars := 0
	for _, m := range codeSpanPattern.FindAllString(text, -1) {
		for _, r := range m {
			if !isWide(r) {
				codeChars++
			}
		}
	}

	otherChars := totalChars - wideChars - codeChars

	// Integer arithmetic keeps the floor division exact:
	// floor(n/1.5) == n*2/3, floor(n/3.5) == n*2/7.
	stats := TokenStats{
		WideTokens:  wideChars * wideCharsDen / wideCharsNum,
		CodeTokens:  codeChars * codeCharsDen / codeCharsNum,
		OtherTokens: otherChars / otherCharsPerToken,
		TotalChars:  totalChars,
	}
	stats.TotalTokens = stats.WideTokens + stats.CodeTokens + stats.OtherTokens
	return stats
}

// Count returns only the total token estimate for text.
func Count(text string) int {
	return Estimate(text).TotalTokens
}
