package analysis

import "time"

// Report contains pre-computed views of classification results.
// Computed once by Analyze(), used by the JSON and summary renderers.
type Report struct {
	// Files holds one entry per file in path order.
	Files []FileReport `json:"files"`

	// Diagnostics is the flat list across all files.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	// ByCategory counts top-level regions per category.
	ByCategory []CategoryAnalysis `json:"byCategory,omitempty"`

	// ByKind counts diagnostics per kind.
	ByKind []KindAnalysis `json:"byKind,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// FileReport is the classification of one file.
type FileReport struct {
	Path        string           `json:"path"`
	Error       string           `json:"error,omitempty"`
	Header      *HeaderEntry     `json:"header,omitempty"`
	Regions     int              `json:"regions"`
	Diagnostics int              `json:"diagnostics"`
	Spans       []SpanEntry      `json:"spans,omitempty"`
	References  []ReferenceEntry `json:"references,omitempty"`
}

// HeaderEntry is the article title block that precedes the first section
// divider.
type HeaderEntry struct {
	Title string `json:"title"`
	Date  string `json:"date,omitempty"`
}

// SpanEntry is the serialisable form of a classified span.
type SpanEntry struct {
	Category string      `json:"category"`
	Start    int         `json:"start"`
	End      int         `json:"end"`
	Line     int         `json:"line"`
	Column   int         `json:"column"`
	Level    int         `json:"level,omitempty"`
	Number   int         `json:"number,omitempty"`
	Anchor   string      `json:"anchor,omitempty"`
	Language string      `json:"language,omitempty"`
	Guessed  bool        `json:"guessed,omitempty"`
	Label    string      `json:"label,omitempty"`
	Link     *LinkEntry  `json:"link,omitempty"`
	Children []SpanEntry `json:"children,omitempty"`
}

// LinkEntry is the destination of a link-like span.
type LinkEntry struct {
	URL      string `json:"url,omitempty"`
	Title    string `json:"title,omitempty"`
	RefID    string `json:"refId,omitempty"`
	Resolved bool   `json:"resolved"`
}

// ReferenceEntry is one authoritative link reference declaration.
type ReferenceEntry struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	Line  int    `json:"line"`
}

// DiagnosticEntry represents a single diagnostic in the report.
type DiagnosticEntry struct {
	FilePath string `json:"filePath"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Offset   int    `json:"offset"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files                int `json:"filesClassified"`
	FilesErrored         int `json:"filesErrored"`
	FilesWithDiagnostics int `json:"filesWithDiagnostics"`
	Regions              int `json:"regions"`
	References           int `json:"references"`
	Diagnostics          int `json:"diagnostics"`
}

// HasDiagnostics returns true if any file produced a diagnostic.
func (t Totals) HasDiagnostics() bool {
	return t.Diagnostics > 0
}

// CategoryAnalysis counts regions of one category.
type CategoryAnalysis struct {
	Category string `json:"category"`
	Regions  int    `json:"regions"`
	Files    int    `json:"files"`
}

// KindAnalysis counts diagnostics of one kind.
type KindAnalysis struct {
	Kind        string   `json:"kind"`
	Diagnostics int      `json:"diagnostics"`
	Files       []string `json:"files,omitempty"`
}
