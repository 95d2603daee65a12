package analysis

// SortField specifies how ByRule is ordered.
type SortField string

const (
	// SortByCount sorts by offense count, highest first.
	SortByCount SortField = "count"
	// SortByAlpha sorts by rule ID.
	SortByAlpha SortField = "alpha"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	return s == SortByCount || s == SortByAlpha
}

// Options configures the Analyze function.
type Options struct {
	// SortBy specifies how to sort ByRule.
	SortBy SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{SortBy: SortByCount}
}
