package tokens

// ModelProfile describes the context limits of a chat-completion model.
// Profiles are supplied by the caller; this package does not hardcode a
// registry of available models.
type ModelProfile struct {
	Name             string
	MaxContextTokens int
	MaxOutputTokens  int
	Description      string
}

// BudgetConfig derives the usable diff token budget from a model profile.
type BudgetConfig struct {
	// SystemPromptReserve is the token head-room kept for the system prompt.
	SystemPromptReserve int
	// ResponseReserve is the token head-room kept for the model's reply.
	ResponseReserve int
	// SafetyMargin is the fraction of the remaining window actually used,
	// e.g. 0.9 for 90%.
	SafetyMargin float64
	// MinUsefulChunkTokens is the smallest remaining budget worth filling
	// with a truncated chunk.
	MinUsefulChunkTokens int
}

// AvailableTokens returns the number of tokens available for diff content
// under profile. A misconfigured profile that computes negative is clamped to
// zero; the caller is expected to log that, not treat it as an error.
func (b BudgetConfig) AvailableTokens(profile ModelProfile) int {
	available := profile.MaxContextTokens - b.SystemPromptReserve - b.ResponseReserve
	available = int(float64(available) * b.SafetyMargin)
	if available < 0 {
		return 0
	}
	return available
}

// Fits reports whether text fits in the budget for profile with reserve
// tokens to spare.
func (b BudgetConfig) Fits(text string, profile ModelProfile, reserve int) bool {
	return Count(text) <= b.AvailableTokens(profile)-reserve
}
