package reporter

import (
	"fmt"

	"github.com/yaklabco/dllup/pkg/config"
)

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText      Format = Format(config.FormatText)
	FormatTree      Format = Format(config.FormatTree)
	FormatTable     Format = Format(config.FormatTable)
	FormatJSON      Format = Format(config.FormatJSON)
	FormatSummary   Format = Format(config.FormatSummary)
	FormatHighlight Format = Format(config.FormatHighlight)
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatText, nil
	}
	format := Format(formatStr)
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: text, tree, table, json, summary, highlight", formatStr)
	}
	return format, nil
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	return config.OutputFormat(f).IsValid()
}
