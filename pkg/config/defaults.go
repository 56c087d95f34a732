package config

import (
	"github.com/pr-review-toolkit/review-runner/pkg/chunker"
	"github.com/pr-review-toolkit/review-runner/pkg/tokens"
)

// DefaultProfiles returns the known model profiles. The registry lives here,
// on the caller side, so the token and chunking engines stay free of
// hardcoded model knowledge.
func DefaultProfiles() map[string]tokens.ModelProfile {
	return map[string]tokens.ModelProfile{
		"kimi-k2-0905-preview": {
			Name:             "kimi-k2-0905-preview",
			MaxContextTokens: 256000,
			MaxOutputTokens:  8192,
			Description:      "most capable version",
		},
		"kimi-k2-turbo-preview": {
			Name:             "kimi-k2-turbo-preview",
			MaxContextTokens: 256000,
			MaxOutputTokens:  8192,
			Description:      "high-speed version (recommended)",
		},
	}
}

// DefaultFallbackChain lists the profiles tried, in order, when the diff
// does not fit the preferred model. With 256K contexts a single fallback is
// enough; oversized diffs are handled by chunking, not by model switching.
func DefaultFallbackChain() []string {
	return []string{"kimi-k2-turbo-preview"}
}

// DefaultBudget returns the token budget derivation used for all profiles.
func DefaultBudget() tokens.BudgetConfig {
	return tokens.BudgetConfig{
		SystemPromptReserve:  2000,
		ResponseReserve:      8192,
		SafetyMargin:         0.9,
		MinUsefulChunkTokens: 500,
	}
}

// DefaultChunkerConfig returns the scoring and truncation configuration for
// the diff chunker. The weight table is ordered; entries are lowercase
// because matching is case-insensitive.
func DefaultChunkerConfig() chunker.Config {
	return chunker.Config{
		Weights: []chunker.PathWeight{
			// High priority: core logic
			{Pattern: "src/", Weight: 1.5},
			{Pattern: "core/", Weight: 1.5},
			{Pattern: "lib/", Weight: 1.4},
			{Pattern: "app/", Weight: 1.4},

			// Medium priority
			{Pattern: "api/", Weight: 1.2},
			{Pattern: "services/", Weight: 1.2},
			{Pattern: "controllers/", Weight: 1.2},
			{Pattern: "models/", Weight: 1.2},

			// Lower priority
			{Pattern: "test", Weight: 0.7},
			{Pattern: "spec", Weight: 0.7},
			{Pattern: "__test__", Weight: 0.6},
			{Pattern: "__mock__", Weight: 0.5},

			// Config files
			{Pattern: "config", Weight: 0.8},
			{Pattern: ".config", Weight: 0.6},

			// Docs
			{Pattern: "docs/", Weight: 0.5},
			{Pattern: "readme", Weight: 0.6},
			{Pattern: ".md", Weight: 0.5},
		},
		AdditionsBoost: 1.1,
		SecurityBoost:  1.3,
		SecurityKeywords: []string{
			"auth", "password", "token", "secret", "key", "crypt", "security",
		},
		Languages: map[string]string{
			".py":    "python",
			".js":    "javascript",
			".ts":    "typescript",
			".tsx":   "typescript",
			".jsx":   "javascript",
			".go":    "go",
			".rs":    "rust",
			".java":  "java",
			".rb":    "ruby",
			".php":   "php",
			".cs":    "csharp",
			".cpp":   "cpp",
			".c":     "c",
			".swift": "swift",
			".kt":    "kotlin",
		},
		TruncationPenalty:    0.8,
		TruncationMarker:     "\n... [truncated]",
		MinUsefulChunkTokens: 500,
		MinTruncatedChars:    200,
	}
}

// BinaryExtensions lists file suffixes that are never reviewable.
func BinaryExtensions() []string {
	return []string{
		// Images
		".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".ico", ".svg",
		// Documents
		".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
		// Archives
		".zip", ".rar", ".7z", ".tar", ".gz", ".bz2",
		// Audio/Video
		".mp3", ".wav", ".mp4", ".avi", ".mov",
		// Fonts
		".ttf", ".otf", ".woff", ".woff2",
		// Binaries
		".exe", ".dll", ".so", ".dylib", ".pyc", ".class", ".jar",
		// Databases
		".sqlite", ".db",
	}
}
