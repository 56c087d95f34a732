// Package review orchestrates a pull-request review: it budgets the diff,
// asks the model for findings, and filters, ranks, and posts the resulting
// suggestions.
package review

// Severity grades a suggestion's urgency.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

var severityRank = map[Severity]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
}

// Rank returns the numeric ordering of a severity. Unknown severities rank
// as medium so a creative model reply is not silently dropped.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return severityRank[SeverityMedium]
}

// Suggestion is a single review finding.
type Suggestion struct {
	ID           string
	File         string
	Language     string
	Content      string
	ExistingCode string
	ImprovedCode string
	Summary      string
	LineStart    int
	LineEnd      int
	Label        string // bug, performance, security
	Severity     Severity
	RankScore    float64
}

// Options toggles suggestion categories per repository configuration.
type Options struct {
	Bug         bool
	Performance bool
	Security    bool
}

// Control limits how many suggestions survive and at what severity floor.
type Control struct {
	MaxSuggestions int
	MinSeverity    Severity
}

// DefaultControl returns the standard suggestion limits.
func DefaultControl() Control {
	return Control{
		MaxSuggestions: 20,
		MinSeverity:    SeverityMedium,
	}
}
