package tokens

import (
	"strings"
	"testing"
)

func TestEstimateEmpty(t *testing.T) {
	stats := Estimate("")
	if stats.TotalTokens != 0 || stats.WideTokens != 0 || stats.CodeTokens != 0 || stats.OtherTokens != 0 {
		t.Errorf("empty input should produce all-zero stats, got %+v", stats)
	}
	if stats.TotalChars != 0 {
		t.Errorf("empty input should have zero chars, got %d", stats.TotalChars)
	}
}

func TestEstimatePureASCII(t *testing.T) {
	// 40 ASCII chars at 4.0 chars/token
	text := strings.Repeat("abcd", 10)
	stats := Estimate(text)

	if stats.WideTokens != 0 {
		t.Errorf("ASCII text should have no wide tokens, got %d", stats.WideTokens)
	}
	if stats.CodeTokens != 0 {
		t.Errorf("text without code spans should have no code tokens, got %d", stats.CodeTokens)
	}
	if stats.OtherTokens != 10 {
		t.Errorf("expected 10 other tokens for 40 chars, got %d", stats.OtherTokens)
	}
	if stats.TotalTokens != 10 {
		t.Errorf("expected 10 total tokens, got %d", stats.TotalTokens)
	}
}

func TestEstimatePureWide(t *testing.T) {
	// 10 CJK chars at 1.5 chars/token -> floor(10/1.5) = 6
	text := "这是一段中文测试文本"
	stats := Estimate(text)

	if stats.TotalChars != 10 {
		t.Fatalf("expected 10 chars, got %d", stats.TotalChars)
	}
	if stats.WideTokens != 6 {
		t.Errorf("expected 6 wide tokens, got %d", stats.WideTokens)
	}
	if stats.TotalTokens != 6 {
		t.Errorf("expected 6 total tokens, got %d", stats.TotalTokens)
	}
	if stats.OtherTokens != 0 || stats.CodeTokens != 0 {
		t.Errorf("pure wide text should only use the wide ratio, got %+v", stats)
	}
}

func TestEstimateCodeSpans(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		codeChars int
	}{
		{
			name:      "inline span",
			text:      "call `foo()` here",
			codeChars: 7, // `foo()` including backticks
		},
		{
			name:      "fenced block",
			text:      "```\nx := 1\n```",
			codeChars: 14,
		},
		{
			name: "fence not consumed as inline spans",
			// The fenced alternative must match first; counting the
			// backtick runs as inline spans would change the total.
			text:      "```go\na\n```",
			codeChars: 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Estimate(tt.text)
			want := tt.codeChars * 2 / 7
			if stats.CodeTokens != want {
				t.Errorf("expected %d code tokens, got %d", want, stats.CodeTokens)
			}
		})
	}
}

func TestEstimateWideInsideCodeNotDoubleCounted(t *testing.T) {
	// 4 wide chars inside an inline span: counted as wide, not as code.
	text := "`中文中文`"
	stats := Estimate(text)

	if stats.WideTokens != 4*2/3 {
		t.Errorf("expected %d wide tokens, got %d", 4*2/3, stats.WideTokens)
	}
	// Only the two backticks count as code chars.
	if stats.CodeTokens != 2*2/7 {
		t.Errorf("expected %d code tokens, got %d", 2*2/7, stats.CodeTokens)
	}
	sum := stats.WideTokens + stats.CodeTokens + stats.OtherTokens
	if stats.TotalTokens != sum {
		t.Errorf("total %d should equal sum of parts %d", stats.TotalTokens, sum)
	}
}

func TestEstimateNeverNegative(t *testing.T) {
	inputs := []string{
		"``",
		"`",
		"``````",
		"```中```",
		"\xff\xfe invalid utf8",
		strings.Repeat("`x`", 100),
	}
	for _, in := range inputs {
		stats := Estimate(in)
		if stats.TotalTokens < 0 || stats.OtherTokens < 0 {
			t.Errorf("negative token count for %q: %+v", in, stats)
		}
	}
}

func TestCount(t *testing.T) {
	text := strings.Repeat("x", 10000)
	if got := Count(text); got != 2500 {
		t.Errorf("expected 2500 tokens for 10000 'x' chars, got %d", got)
	}
}

func TestDensity(t *testing.T) {
	stats := Estimate(strings.Repeat("x", 400))
	if stats.Density() != 4.0 {
		t.Errorf("expected density 4.0 for ASCII, got %f", stats.Density())
	}
	if (TokenStats{}).Density() != 0 {
		t.Error("zero stats should have zero density")
	}
}
