// Package filefilter decides which changed files are worth reviewing.
// Exclusion is a pure predicate over the filename: glob patterns for
// generated or vendored artifacts, plus a binary-extension list.
package filefilter

import (
	"path/filepath"
	"strings"
)

// Filter is an immutable exclusion predicate. Construct once, share freely;
// Exclude is safe for concurrent use.
type Filter struct {
	patterns   []string
	binaryExts map[string]struct{}
}

// New creates a filter from glob patterns and binary file extensions.
// Extensions are matched case-insensitively and must include the leading dot.
func New(patterns []string, binaryExts []string) *Filter {
	exts := make(map[string]struct{}, len(binaryExts))
	for _, ext := range binaryExts {
		exts[strings.ToLower(ext)] = struct{}{}
	}
	return &Filter{
		patterns:   append([]string(nil), patterns...),
		binaryExts: exts,
	}
}

// Exclude reports whether filename should be dropped from review.
func (f *Filter) Exclude(filename string) bool {
	base := filepath.Base(filename)
	for _, pattern := range f.patterns {
		// Match against the full path and the base name so "*.lock"
		// catches nested lockfiles the way fnmatch-style tooling does.
		if matched, err := filepath.Match(pattern, filename); err == nil && matched {
			return true
		}
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return f.isBinary(filename)
}

func (f *Filter) isBinary(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return false
	}
	_, ok := f.binaryExts[ext]
	return ok
}

// FilterFiles returns the files that survive exclusion.
func (f *Filter) FilterFiles(files []string) []string {
	var kept []string
	for _, file := range files {
		if !f.Exclude(file) {
			kept = append(kept, file)
		}
	}
	return kept
}
