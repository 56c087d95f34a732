package chunker

import "sort"

// truncationSafetyFactor shrinks the estimated character budget during
// truncation so the re-estimated chunk stays under the remaining tokens.
const truncationSafetyFactor = 0.9

// Allocate selects the records that fit availableTokens and maxFiles,
// highest priority first. Ties keep original parse order (the sort is
// stable). At most one included record is a truncated copy: truncation
// consumes the entire remaining budget, so every record after it is excluded
// by construction. Excluded records keep their original content so callers
// can report what was omitted; a truncated file therefore shows up in both
// lists — the shortened copy in included, the full record in excluded.
//
// Allocate never fails: a zero or clamped budget simply excludes everything.
func (c *Chunker) Allocate(records []FileChange, availableTokens, maxFiles int) (included, excluded []FileChange) {
	sorted := make([]FileChange, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].order < sorted[j].order
	})

	usedTokens := 0
	for _, rec := range sorted {
		if len(included) >= maxFiles {
			excluded = append(excluded, rec)
			continue
		}

		if usedTokens+rec.TokenCount <= availableTokens {
			included = append(included, rec)
			usedTokens += rec.TokenCount
			continue
		}

		remaining := availableTokens - usedTokens
		if remaining > c.cfg.MinUsefulChunkTokens {
			if trunc, ok := c.truncate(rec, remaining); ok {
				included = append(included, trunc)
				excluded = append(excluded, rec)
				// The budget is now exhausted; all subsequent
				// records fall through to exclusion.
				usedTokens += remaining
				continue
			}
		}

		excluded = append(excluded, rec)
	}

	return included, excluded
}

// truncate builds a shortened copy of rec that costs exactly maxTokens. The
// character budget comes from the record's own observed chars-per-token
// ratio. Returns false when the result would be too short to be useful.
func (c *Chunker) truncate(rec FileChange, maxTokens int) (FileChange, bool) {
	runes := []rune(rec.Content)

	tokenCount := rec.TokenCount
	if tokenCount < 1 {
		tokenCount = 1
	}
	density := float64(len(runes)) / float64(tokenCount)

	maxChars := int(float64(maxTokens) * density * truncationSafetyFactor)
	if maxChars < c.cfg.MinTruncatedChars {
		return FileChange{}, false
	}
	if maxChars > len(runes) {
		maxChars = len(runes)
	}

	trunc := rec
	trunc.Content = string(runes[:maxChars]) + c.cfg.TruncationMarker
	trunc.TokenCount = maxTokens
	trunc.Priority = rec.Priority * c.cfg.TruncationPenalty
	trunc.Truncated = true
	return trunc, true
}
