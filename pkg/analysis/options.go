package analysis

// SortField specifies how to sort aggregated views.
type SortField string

const (
	// SortByCount sorts by count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeSpans includes each file's full span tree.
	IncludeSpans bool

	// IncludeReferences includes each file's link reference table.
	IncludeReferences bool

	// IncludeDiagnostics includes the flat diagnostics list.
	IncludeDiagnostics bool

	// SortBy specifies how to sort ByKind and ByCategory.
	SortBy SortField

	// SortDesc sorts counts in descending order (highest first).
	SortDesc bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeSpans:       true,
		IncludeReferences:  true,
		IncludeDiagnostics: true,
		SortBy:             SortByCount,
		SortDesc:           true,
	}
}
