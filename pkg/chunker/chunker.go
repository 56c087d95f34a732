// Package chunker turns a raw unified diff into a budget-respecting payload
// for a chat-completion model. It parses the diff into per-file records,
// estimates their token cost, scores them by review priority, and greedily
// selects the highest-priority records that fit a token and file-count
// budget, truncating at most one record to use the remaining budget.
//
// The whole package is synchronous and side-effect-free: given the same
// diff, filter, and configuration it always produces the same selection, and
// a Chunker is safe for concurrent use as long as its configuration is not
// mutated after construction.
package chunker

// ChangeKind classifies a per-file diff segment by its add/remove balance.
type ChangeKind string

const (
	KindAdded    ChangeKind = "added"
	KindModified ChangeKind = "modified"
	KindDeleted  ChangeKind = "deleted"
)

// FileChange is the per-file unit of a diff carried through parsing, scoring,
// allocation, and rendering. Values are never mutated after creation; the
// only derived form is the truncated copy produced by the allocator.
type FileChange struct {
	Filename   string
	Content    string
	TokenCount int
	Priority   float64
	Language   string
	ChangeKind ChangeKind

	// Truncated marks a copy whose content was shortened to fit remaining
	// budget. At most one included record per allocation is truncated.
	Truncated bool

	// order is the position within the parse result, used as the stable
	// tie-break when priorities are equal.
	order int
}

// Size returns the content length in characters.
func (f FileChange) Size() int {
	n := 0
	for range f.Content {
		n++
	}
	return n
}

// PathWeight is one entry of the ordered priority weight table. Pattern is
// matched as a case-insensitive substring of the filename; every matching
// entry multiplies the score, so multiple matches compound.
type PathWeight struct {
	Pattern string
	Weight  float64
}

// FileFilter decides which filenames are dropped before scoring. Files it
// excludes appear in neither the included nor the excluded allocation result.
type FileFilter interface {
	Exclude(filename string) bool
}

// Config carries the scoring and truncation knobs. Build it once (see the
// config package for defaults) and treat it as read-only.
type Config struct {
	// Weights is the ordered path-substring weight table.
	Weights []PathWeight

	// AdditionsBoost multiplies the score of files with more added than
	// removed lines. Must be > 1.0 to act as a boost.
	AdditionsBoost float64

	// SecurityBoost multiplies the score of files whose name or content
	// mentions a security keyword. Must be > 1.0 to act as a boost.
	SecurityBoost float64

	// SecurityKeywords are matched case-insensitively against filename and
	// content. Entries must be lowercase.
	SecurityKeywords []string

	// Languages maps filename extensions (with dot) to language tags.
	Languages map[string]string

	// TruncationPenalty multiplies the priority of a truncated copy.
	// Must be < 1.0.
	TruncationPenalty float64

	// TruncationMarker is appended to truncated content.
	TruncationMarker string

	// MinUsefulChunkTokens is the smallest remaining token budget worth
	// filling with a truncated chunk.
	MinUsefulChunkTokens int

	// MinTruncatedChars is the character floor below which truncation is
	// abandoned in favor of full exclusion.
	MinTruncatedChars int
}

// Chunker binds a configuration and a file filter. filter may be nil, in
// which case no files are dropped.
type Chunker struct {
	cfg    Config
	filter FileFilter
}

// New creates a Chunker. cfg is copied; the caller must not mutate slices or
// maps it references after the call.
func New(cfg Config, filter FileFilter) *Chunker {
	return &Chunker{cfg: cfg, filter: filter}
}

// Chunk parses diff and allocates the resulting records into the given
// budget. It is the one-call form of Parse followed by Allocate.
func (c *Chunker) Chunk(diff string, availableTokens, maxFiles int) (included, excluded []FileChange) {
	return c.Allocate(c.Parse(diff), availableTokens, maxFiles)
}
