// Package config provides configuration for the review runner.
//
// Configuration comes from two places (later overrides earlier):
//  1. Defaults (hardcoded here)
//  2. CI environment variables: INPUT_* (the workflow's `with:` inputs)
//
// A third, per-repository layer (.review-config.yml, parsed by repo.go) is
// merged by the review pipeline at run time.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// ActionConfig is the runner configuration loaded from CI environment
// variables.
type ActionConfig struct {
	// API settings
	APIKey      string `envconfig:"API_KEY"`
	BaseURL     string `envconfig:"BASE_URL" default:"https://api.moonshot.cn/v1"`
	GitHubToken string `envconfig:"GITHUB_TOKEN"`
	Model       string `envconfig:"MODEL" default:"kimi-k2-turbo-preview"`

	// General settings
	Language    string `envconfig:"LANGUAGE" default:"en-US"`
	ReviewLevel string `envconfig:"REVIEW_LEVEL" default:"normal"`
	MaxFiles    int    `envconfig:"MAX_FILES" default:"50"`

	// File filtering
	ExcludePatterns []string `envconfig:"EXCLUDE_PATTERNS" default:"*.lock,*.min.js,*.min.css,package-lock.json,yarn.lock,pnpm-lock.yaml,*.map"`

	// Review behavior
	MaxSuggestions    int    `envconfig:"MAX_SUGGESTIONS" default:"20"`
	ExtraInstructions string `envconfig:"REVIEW_EXTRA_INSTRUCTIONS"`

	// AutoReview controls whether pull_request events trigger a review
	// without an explicit /review command.
	AutoReview bool `envconfig:"AUTO_REVIEW" default:"true"`
}

// LoadActionConfig reads the INPUT_* environment variables.
func LoadActionConfig() (ActionConfig, error) {
	var cfg ActionConfig
	if err := envconfig.Process("input", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to load action config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the settings required for a review run are present.
func (c ActionConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("INPUT_API_KEY is required")
	}
	if c.MaxFiles <= 0 {
		return fmt.Errorf("INPUT_MAX_FILES must be positive, got %d", c.MaxFiles)
	}
	switch c.ReviewLevel {
	case "strict", "normal", "gentle":
	default:
		return fmt.Errorf("invalid review level %q (valid: strict, normal, gentle)", c.ReviewLevel)
	}
	return nil
}
