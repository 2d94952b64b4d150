package runner

import (
	"maps"
	"slices"

	"github.com/yaklabco/dllup/pkg/classify"
	"github.com/yaklabco/dllup/pkg/fsutil"
	"github.com/yaklabco/dllup/pkg/scan"
)

// FileOutcome is the classification of one file.
type FileOutcome struct {
	Path string

	// Info snapshots the file as it was read. Nil when reading failed.
	Info *fsutil.FileInfo

	// Result is nil when Error is set.
	Result *classify.Result

	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// FilesWithDiagnostics counts files with at least one diagnostic.
	FilesWithDiagnostics int

	// Regions counts top-level block regions across all files.
	Regions int

	// RegionsByCategory counts top-level regions per category name.
	RegionsByCategory map[string]int

	// References counts reference definitions in the final tables.
	References int

	Diagnostics       int
	DiagnosticsByKind map[scan.DiagnosticKind]int
}

// Kinds returns the diagnostic kinds seen during the run in sorted order.
func (s Stats) Kinds() []scan.DiagnosticKind {
	return slices.Sorted(maps.Keys(s.DiagnosticsByKind))
}

// Result is the outcome of a run, with files in path order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any file could not be read.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasDiagnostics reports whether any file produced a diagnostic.
func (r *Result) HasDiagnostics() bool {
	return r != nil && r.Stats.Diagnostics > 0
}

func newStats() Stats {
	return Stats{
		RegionsByCategory: make(map[string]int),
		DiagnosticsByKind: make(map[scan.DiagnosticKind]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	res := outcome.Result
	r.Stats.FilesProcessed++
	r.Stats.Regions += len(res.Blocks)
	r.Stats.References += res.Refs.Len()
	for _, region := range res.Blocks {
		r.Stats.RegionsByCategory[region.Category.String()]++
	}

	if len(res.Diagnostics) > 0 {
		r.Stats.FilesWithDiagnostics++
	}
	r.Stats.Diagnostics += len(res.Diagnostics)
	for _, diag := range res.Diagnostics {
		r.Stats.DiagnosticsByKind[diag.Kind]++
	}
}

// CategoryCounts returns per-category region counts sorted by category name.
func (s Stats) CategoryCounts() []CategoryCount {
	counts := make([]CategoryCount, 0, len(s.RegionsByCategory))
	for _, name := range slices.Sorted(maps.Keys(s.RegionsByCategory)) {
		counts = append(counts, CategoryCount{Category: name, Count: s.RegionsByCategory[name]})
	}
	return counts
}

// CategoryCount pairs a category name with a region count.
type CategoryCount struct {
	Category string
	Count    int
}
