package chunker

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreDefault(t *testing.T) {
	c := New(testConfig(), nil)

	// No weight match, no boosts: equal additions and deletions, neutral
	// name and content.
	got := c.score("main.rs", "-a\n+b\n")
	if !almostEqual(got, 1.0) {
		t.Errorf("expected default score 1.0, got %f", got)
	}
}

func TestScoreCompoundsAcrossWeightEntries(t *testing.T) {
	c := New(testConfig(), nil)

	// Matches src/ (1.5), api/ (1.2), test (0.7) and .md (0.5); every match
	// multiplies. Pinned so a normalization of this behavior has to be a
	// conscious product decision, not an accidental one.
	got := c.score("src/api/test/notes.md", "-x\n+y\n")
	want := 1.5 * 1.2 * 0.7 * 0.5
	if !almostEqual(got, want) {
		t.Errorf("expected compounded score %f, got %f", want, got)
	}
}

func TestScoreAdditionsBoost(t *testing.T) {
	c := New(testConfig(), nil)

	got := c.score("main.rs", "+one\n+two\n-three\n")
	if !almostEqual(got, 1.1) {
		t.Errorf("expected additions boost 1.1, got %f", got)
	}
}

func TestScoreSecurityBoost(t *testing.T) {
	c := New(testConfig(), nil)

	tests := []struct {
		name     string
		filename string
		content  string
		want     float64
	}{
		{"keyword in filename", "auth_middleware.rs", "-a\n+b\n", 1.3},
		{"keyword in content", "main.rs", "-a\n+checkPassword()\n-b\n", 1.3},
		{"case insensitive", "main.rs", "-a\n+SECRET_KEY\n-b\n", 1.3},
		{"single boost for multiple keywords", "auth.rs", "-password secret\n+x\n", 1.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.score(tt.filename, tt.content)
			if !almostEqual(got, tt.want) {
				t.Errorf("score(%s) = %f, want %f", tt.filename, got, tt.want)
			}
		})
	}
}

func TestScoreNeverNegative(t *testing.T) {
	c := New(testConfig(), nil)
	if got := c.score("docs/test/readme.md", ""); got < 0 {
		t.Errorf("score must stay >= 0, got %f", got)
	}
}
