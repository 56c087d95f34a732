package chunker

import "strings"

// score assigns a review priority to a file. The base score is 1.0; every
// matching weight-table entry multiplies it, so a path hitting several
// entries compounds in whichever direction the weights point.
func (c *Chunker) score(filename, content string) float64 {
	priority := 1.0
	lowerName := strings.ToLower(filename)

	for _, w := range c.cfg.Weights {
		if strings.Contains(lowerName, w.Pattern) {
			priority *= w.Weight
		}
	}

	additions, deletions := countChangedLines(content)
	if additions > deletions {
		priority *= c.cfg.AdditionsBoost
	}

	lowerContent := strings.ToLower(content)
	for _, kw := range c.cfg.SecurityKeywords {
		if strings.Contains(lowerName, kw) || strings.Contains(lowerContent, kw) {
			priority *= c.cfg.SecurityBoost
			break
		}
	}

	return priority
}
