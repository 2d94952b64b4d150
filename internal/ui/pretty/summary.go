package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/dllup/pkg/runner"
)

const summaryDividerWidth = 40

func plural(count int, singular, pluralForm string) string {
	if count == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(count) + " " + pluralForm
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "42 regions, 3 references in 2 files, 1 diagnostic in 1 file".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	parts := []string{
		fmt.Sprintf("%s, %s in %s",
			plural(stats.Regions, "region", "regions"),
			plural(stats.References, "reference", "references"),
			plural(stats.FilesProcessed, "file", "files"),
		),
	}

	if stats.Diagnostics == 0 {
		parts = append(parts, s.Success.Render("no diagnostics"))
	} else {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%s in %s",
			plural(stats.Diagnostics, "diagnostic", "diagnostics"),
			plural(stats.FilesWithDiagnostics, "file", "files"),
		)))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesErrored, "unreadable file", "unreadable files")))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label, value string) {
		fmt.Fprintf(&builder, "  %-20s %s\n", label+":", value)
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files classified", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesErrored > 0 {
		row("Files unreadable", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	row("Regions", s.SummaryValue.Render(strconv.Itoa(stats.Regions)))
	for _, count := range stats.CategoryCounts() {
		fmt.Fprintf(&builder, "    %-18s %s\n", count.Category+":", s.SummaryValue.Render(strconv.Itoa(count.Count)))
	}
	row("References", s.SummaryValue.Render(strconv.Itoa(stats.References)))

	builder.WriteString("\n")
	row("Diagnostics", s.SummaryValue.Render(strconv.Itoa(stats.Diagnostics)))
	for _, kind := range stats.Kinds() {
		fmt.Fprintf(&builder, "    %-18s %s\n", string(kind)+":", s.Warning.Render(strconv.Itoa(stats.DiagnosticsByKind[kind])))
	}

	builder.WriteString("\n")
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Some files could not be read"))
	case stats.Diagnostics > 0:
		builder.WriteString(s.Warning.Render("Classified with diagnostics"))
	default:
		builder.WriteString(s.Success.Render("Classified cleanly"))
	}
	builder.WriteString("\n")

	return builder.String()
}
