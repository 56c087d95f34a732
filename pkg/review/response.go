package review

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// rawSuggestion is the JSON shape the model is instructed to reply with.
type rawSuggestion struct {
	RelevantFile       string `json:"relevant_file"`
	Language           string `json:"language"`
	SuggestionContent  string `json:"suggestion_content"`
	ExistingCode       string `json:"existing_code"`
	ImprovedCode       string `json:"improved_code"`
	OneSentenceSummary string `json:"one_sentence_summary"`
	RelevantLinesStart int    `json:"relevant_lines_start"`
	RelevantLinesEnd   int    `json:"relevant_lines_end"`
	Label              string `json:"label"`
	Severity           string `json:"severity"`
}

// ParseSuggestions extracts suggestions from a model reply. The reply is
// expected to contain a JSON array, possibly wrapped in a markdown code fence
// or surrounded by prose. Entries with no content are skipped rather than
// failing the whole reply.
func ParseSuggestions(response string) ([]Suggestion, error) {
	payload := extractJSONArray(response)
	if payload == "" {
		return nil, fmt.Errorf("no JSON array found in model response")
	}

	var raw []rawSuggestion
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %w", err)
	}

	var suggestions []Suggestion
	for _, r := range raw {
		if strings.TrimSpace(r.SuggestionContent) == "" {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			ID:           uuid.NewString(),
			File:         strings.TrimSpace(r.RelevantFile),
			Language:     r.Language,
			Content:      r.SuggestionContent,
			ExistingCode: r.ExistingCode,
			ImprovedCode: r.ImprovedCode,
			Summary:      r.OneSentenceSummary,
			LineStart:    r.RelevantLinesStart,
			LineEnd:      r.RelevantLinesEnd,
			Label:        strings.ToLower(strings.TrimSpace(r.Label)),
			Severity:     Severity(strings.ToLower(strings.TrimSpace(r.Severity))),
		})
	}
	return suggestions, nil
}

// extractJSONArray finds the outermost JSON array in a reply, stripping any
// markdown code fences first.
func extractJSONArray(response string) string {
	s := strings.TrimSpace(response)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
