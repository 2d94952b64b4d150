// Package config defines core configuration types for dllup.
// These types are pure data structures shared by the loader and the CLI.
package config

import "slices"

// OutputFormat specifies the output format for classification results.
type OutputFormat string

const (
	FormatText      OutputFormat = "text"
	FormatTree      OutputFormat = "tree"
	FormatTable     OutputFormat = "table"
	FormatJSON      OutputFormat = "json"
	FormatSummary   OutputFormat = "summary"
	FormatHighlight OutputFormat = "highlight"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	return slices.Contains(Formats(), f)
}

// Formats lists every output format.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTree, FormatTable, FormatJSON, FormatSummary, FormatHighlight}
}

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Duplicate reference policies, as accepted by refs.ParsePolicy.
const (
	DuplicateRefsLast  = "last"
	DuplicateRefsFirst = "first"
)

// Config is the root configuration structure for dllup.
type Config struct {
	// Grammars are sub-grammar binding specs ("tag[=grammar][.dialect]").
	// Empty means the builtin default set.
	Grammars []string `yaml:"grammars,omitempty" toml:"grammars,omitempty"`

	// DuplicateRefs selects the winning definition of a duplicated
	// reference id: "last" or "first".
	DuplicateRefs string `yaml:"duplicate_refs,omitempty" toml:"duplicate_refs,omitempty"`

	// GuessUntagged infers a language for fences without a "lang" line.
	GuessUntagged *bool `yaml:"guess_untagged,omitempty" toml:"guess_untagged,omitempty"`

	// HeadingAnchors computes slug anchors for headings.
	HeadingAnchors *bool `yaml:"heading_anchors,omitempty" toml:"heading_anchors,omitempty"`

	// Extensions are the file extensions (with leading dot) treated as dllup.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Color controls styled output: "auto", "always" or "never".
	Color ColorMode `yaml:"color,omitempty" toml:"color,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// Strict turns diagnostics into a failing exit status.
	Strict bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		DuplicateRefs:  DuplicateRefsLast,
		GuessUntagged:  Bool(false),
		HeadingAnchors: Bool(true),
		Extensions:     DefaultExtensions(),
		Color:          ColorAuto,
		Format:         FormatText,
		Jobs:           0, // 0 means use GOMAXPROCS
	}
}

// DefaultExtensions returns the default set of dllup file extensions.
func DefaultExtensions() []string {
	return []string{".dllu", ".dllup"}
}

// Bool returns a pointer to value.
func Bool(value bool) *bool {
	return &value
}

// Enabled dereferences an optional flag, treating nil as false.
func Enabled(flag *bool) bool {
	return flag != nil && *flag
}
