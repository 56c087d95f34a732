package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RepoConfig is the per-repository configuration from .review-config.yml.
// Any field left out of the file keeps its default.
type RepoConfig struct {
	Enabled           bool
	IgnoreFiles       []string
	ExtraInstructions string

	// Category toggles
	EnableBug         bool
	EnablePerformance bool
	EnableSecurity    bool
}

// DefaultRepoConfig returns the configuration used when no
// .review-config.yml exists.
func DefaultRepoConfig() RepoConfig {
	return RepoConfig{
		Enabled:           true,
		EnableBug:         true,
		EnablePerformance: true,
		EnableSecurity:    true,
	}
}

// ValidationResult collects the outcome of config validation. Warnings never
// block a run; errors make the parser fall back to defaults.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

var validRepoConfigKeys = map[string]bool{
	"enabled":            true,
	"categories":         true,
	"ignore_files":       true,
	"extra_instructions": true,
}

var validCategories = map[string]bool{
	"bug":         true,
	"performance": true,
	"security":    true,
}

// ParseRepoConfig parses and validates .review-config.yml content. A broken
// config never fails the run: parse errors and validation errors both fall
// back to defaults, with the problems reported in the result.
func ParseRepoConfig(content string) (RepoConfig, ValidationResult) {
	cfg := DefaultRepoConfig()

	var data map[string]any
	if err := yaml.Unmarshal([]byte(content), &data); err != nil {
		return cfg, ValidationResult{
			Errors: []string{fmt.Sprintf("yaml parse error: %v", err)},
		}
	}
	if data == nil {
		return cfg, ValidationResult{Valid: true}
	}

	result := validateRepoConfig(data)
	if !result.Valid {
		return cfg, result
	}

	if v, ok := data["enabled"].(bool); ok {
		cfg.Enabled = v
	}
	if cats, ok := data["categories"].(map[string]any); ok {
		if v, ok := cats["bug"].(bool); ok {
			cfg.EnableBug = v
		}
		if v, ok := cats["performance"].(bool); ok {
			cfg.EnablePerformance = v
		}
		if v, ok := cats["security"].(bool); ok {
			cfg.EnableSecurity = v
		}
	}
	if files, ok := data["ignore_files"].([]any); ok {
		for _, f := range files {
			if s, ok := f.(string); ok {
				cfg.IgnoreFiles = append(cfg.IgnoreFiles, s)
			}
		}
	}
	if v, ok := data["extra_instructions"].(string); ok {
		cfg.ExtraInstructions = v
	}

	return cfg, result
}

func validateRepoConfig(data map[string]any) ValidationResult {
	var errs, warnings []string

	for key := range data {
		if !validRepoConfigKeys[key] {
			warnings = append(warnings, fmt.Sprintf("unknown config key: %q", key))
		}
	}

	if v, ok := data["enabled"]; ok {
		if _, isBool := v.(bool); !isBool {
			errs = append(errs, "'enabled' must be a boolean")
		}
	}

	if v, ok := data["categories"]; ok {
		cats, isMap := v.(map[string]any)
		if !isMap {
			errs = append(errs, "'categories' must be an object")
		} else {
			for key, val := range cats {
				if !validCategories[key] {
					warnings = append(warnings, fmt.Sprintf("unknown category: %q", key))
				}
				if _, isBool := val.(bool); !isBool {
					errs = append(errs, fmt.Sprintf("category %q must be a boolean", key))
				}
			}
		}
	}

	if v, ok := data["ignore_files"]; ok {
		files, isList := v.([]any)
		if !isList {
			errs = append(errs, "'ignore_files' must be an array")
		} else {
			for _, f := range files {
				if _, isStr := f.(string); !isStr {
					errs = append(errs, "'ignore_files' must contain only strings")
					break
				}
			}
		}
	}

	if v, ok := data["extra_instructions"]; ok {
		if _, isStr := v.(string); !isStr {
			errs = append(errs, "'extra_instructions' must be a string")
		}
	}

	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}
