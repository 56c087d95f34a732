package chunker

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pr-review-toolkit/review-runner/pkg/tokens"
)

var (
	// gitHeaderPattern matches git-style file headers. The b/ path is the
	// filename of record (it survives renames).
	gitHeaderPattern = regexp.MustCompile(`(?m)^diff --git a/(.+) b/(.+)$`)

	// simpleHeaderPattern matches traditional "--- path" file markers, the
	// fallback for diffs without git headers.
	simpleHeaderPattern = regexp.MustCompile(`(?m)^--- (.+)$`)
)

// segment is a candidate per-file slice of the raw diff before filtering and
// enrichment.
type segment struct {
	name string
	body string
}

// parseStrategy is one total parsing attempt: any input yields zero or more
// segments, never an error.
type parseStrategy func(diff string) []segment

// parseStrategies is the ordered strategy list; the first strategy that
// yields a non-empty result wins.
var parseStrategies = []parseStrategy{splitGitDiff, splitSimpleDiff}

// Parse splits a raw diff into per-file records in original diff order.
// Parsing is total: malformed input degrades to fewer or no records.
// Filter-excluded files are dropped here and are invisible downstream — they
// appear in neither allocation list. That asymmetry with budget-excluded
// files is deliberate and matches how pattern exclusion is reported.
func (c *Chunker) Parse(diff string) []FileChange {
	var segs []segment
	for _, strategy := range parseStrategies {
		if segs = strategy(diff); len(segs) > 0 {
			break
		}
	}

	changes := make([]FileChange, 0, len(segs))
	for _, seg := range segs {
		if c.filter != nil && c.filter.Exclude(seg.name) {
			continue
		}
		additions, deletions := countChangedLines(seg.body)
		changes = append(changes, FileChange{
			Filename:   seg.name,
			Content:    seg.body,
			TokenCount: tokens.Count(seg.body),
			Priority:   c.score(seg.name, seg.body),
			Language:   c.language(seg.name),
			ChangeKind: detectChangeKind(additions, deletions),
			order:      len(changes),
		})
	}
	return changes
}

// splitGitDiff segments on "diff --git a/X b/Y" headers.
func splitGitDiff(diff string) []segment {
	locs := gitHeaderPattern.FindAllStringSubmatchIndex(diff, -1)
	segs := make([]segment, 0, len(locs))
	for i, loc := range locs {
		name := diff[loc[4]:loc[5]]
		bodyStart := loc[1]
		bodyEnd := len(diff)
		if i+1 < len(locs) {
			bodyEnd = locs[i+1][0]
		}
		body := strings.TrimPrefix(diff[bodyStart:bodyEnd], "\n")
		segs = append(segs, segment{name: name, body: body})
	}
	return segs
}

// splitSimpleDiff segments on "--- path" markers, stripping a leading "a/"
// prefix from the filename.
func splitSimpleDiff(diff string) []segment {
	locs := simpleHeaderPattern.FindAllStringSubmatchIndex(diff, -1)
	segs := make([]segment, 0, len(locs))
	for i, loc := range locs {
		name := strings.TrimSpace(diff[loc[2]:loc[3]])
		name = strings.TrimPrefix(name, "a/")
		bodyStart := loc[1]
		bodyEnd := len(diff)
		if i+1 < len(locs) {
			bodyEnd = locs[i+1][0]
		}
		body := strings.TrimSpace(diff[bodyStart:bodyEnd])
		segs = append(segs, segment{name: name, body: body})
	}
	return segs
}

// countChangedLines counts lines beginning with + and - in a segment body.
// File header lines (+++/---) count too; change-kind detection and the
// additions boost both see the same numbers, so the comparison stays fair.
func countChangedLines(body string) (additions, deletions int) {
	for _, line := range strings.Split(body, "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			additions++
		case strings.HasPrefix(line, "-"):
			deletions++
		}
	}
	return additions, deletions
}

func detectChangeKind(additions, deletions int) ChangeKind {
	switch {
	case deletions == 0 && additions > 0:
		return KindAdded
	case additions == 0 && deletions > 0:
		return KindDeleted
	default:
		return KindModified
	}
}

// language infers a language tag from the filename extension. Unknown
// extensions yield the empty string.
func (c *Chunker) language(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return c.cfg.Languages[ext]
}
