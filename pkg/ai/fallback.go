package ai

import "github.com/pr-review-toolkit/review-runner/pkg/tokens"

// SelectProfile picks the model profile for a payload of estimatedTokens.
// The preferred profile wins if the payload fits its budget; otherwise the
// fallback chain is tried in order. The second return value is false when no
// profile can hold the payload — the caller must then rely on chunking, and
// the returned profile (preferred, or the first known fallback) is the one
// to chunk for.
func SelectProfile(
	profiles map[string]tokens.ModelProfile,
	fallbacks []string,
	budget tokens.BudgetConfig,
	preferred string,
	estimatedTokens int,
) (tokens.ModelProfile, bool) {
	if p, ok := profiles[preferred]; ok {
		if estimatedTokens <= budget.AvailableTokens(p) {
			return p, true
		}
	}

	for _, name := range fallbacks {
		p, ok := profiles[name]
		if !ok {
			continue
		}
		if estimatedTokens <= budget.AvailableTokens(p) {
			return p, true
		}
	}

	if p, ok := profiles[preferred]; ok {
		return p, false
	}
	for _, name := range fallbacks {
		if p, ok := profiles[name]; ok {
			return p, false
		}
	}
	return tokens.ModelProfile{}, false
}
