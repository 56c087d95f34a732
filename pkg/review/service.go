package review

import (
	"fmt"
	"sort"
	"strings"
)

var severityScores = map[Severity]float64{
	SeverityCritical: 40,
	SeverityHigh:     30,
	SeverityMedium:   20,
	SeverityLow:      10,
}

var labelScores = map[string]float64{
	"security":    30,
	"bug":         25,
	"performance": 20,
}

// Service filters, deduplicates, ranks, and limits suggestions.
type Service struct {
	control Control
}

// NewService creates a suggestion service. Zero-value control fields fall
// back to the defaults.
func NewService(control Control) *Service {
	if control.MaxSuggestions <= 0 {
		control.MaxSuggestions = DefaultControl().MaxSuggestions
	}
	if control.MinSeverity == "" {
		control.MinSeverity = DefaultControl().MinSeverity
	}
	return &Service{control: control}
}

// Process runs the suggestion pipeline: category filter, diff validation,
// dedup, ranking, severity floor, count limit. It returns the suggestions to
// publish and the ones discarded along the way.
func (s *Service) Process(suggestions []Suggestion, opts Options, patch string) (kept, discarded []Suggestion) {
	filtered := filterByCategory(suggestions, opts)
	if patch != "" {
		filtered = validateAgainstDiff(filtered, patch)
	}
	filtered = removeDuplicates(filtered)

	for i := range filtered {
		filtered[i].RankScore = calculateScore(filtered[i])
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].RankScore > filtered[j].RankScore
	})

	minRank := s.control.MinSeverity.Rank()
	for _, sg := range filtered {
		if sg.Severity.Rank() >= minRank {
			kept = append(kept, sg)
		} else {
			discarded = append(discarded, sg)
		}
	}

	if len(kept) > s.control.MaxSuggestions {
		discarded = append(kept[s.control.MaxSuggestions:], discarded...)
		kept = kept[:s.control.MaxSuggestions]
	}

	return kept, discarded
}

func filterByCategory(suggestions []Suggestion, opts Options) []Suggestion {
	enabled := map[string]bool{
		"bug":         opts.Bug,
		"performance": opts.Performance,
		"security":    opts.Security,
	}

	var out []Suggestion
	for _, sg := range suggestions {
		on, known := enabled[strings.ToLower(sg.Label)]
		// Unknown labels pass through; only an explicit toggle drops.
		if !known || on {
			out = append(out, sg)
		}
	}
	return out
}

// validateAgainstDiff keeps suggestions whose file actually appears in the
// patch. Validation is relaxed: suffix matches pass (the model sometimes
// reports paths without the repository prefix) and file-less suggestions are
// kept.
func validateAgainstDiff(suggestions []Suggestion, patch string) []Suggestion {
	diffFiles := make(map[string]bool)
	for _, line := range strings.Split(patch, "\n") {
		if strings.HasPrefix(line, "+++ b/") || strings.HasPrefix(line, "--- a/") {
			diffFiles[strings.TrimSpace(line[6:])] = true
		}
	}

	var out []Suggestion
	for _, sg := range suggestions {
		if sg.File == "" {
			out = append(out, sg)
			continue
		}
		if diffFiles[sg.File] {
			out = append(out, sg)
			continue
		}
		for f := range diffFiles {
			if strings.HasSuffix(sg.File, f) || strings.HasSuffix(f, sg.File) {
				out = append(out, sg)
				break
			}
		}
	}
	return out
}

func removeDuplicates(suggestions []Suggestion) []Suggestion {
	seen := make(map[string]bool)
	var out []Suggestion
	for _, sg := range suggestions {
		summary := sg.Summary
		if len(summary) > 50 {
			summary = summary[:50]
		}
		key := fmt.Sprintf("%s:%d:%d:%s", sg.File, sg.LineStart, sg.LineEnd, summary)
		if !seen[key] {
			seen[key] = true
			out = append(out, sg)
		}
	}
	return out
}

// calculateScore ranks a suggestion by severity, label, and the size of the
// proposed change.
func calculateScore(sg Suggestion) float64 {
	score, ok := severityScores[sg.Severity]
	if !ok {
		score = severityScores[SeverityMedium]
	}

	if label, ok := labelScores[strings.ToLower(sg.Label)]; ok {
		score += label
	} else {
		score += 10
	}

	if sg.ExistingCode != "" && sg.ImprovedCode != "" {
		delta := float64(len(sg.ImprovedCode)-len(sg.ExistingCode)) / 10
		if delta < 0 {
			delta = -delta
		}
		if delta > 20 {
			delta = 20
		}
		score += delta
	}

	return score
}
