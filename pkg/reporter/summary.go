package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/dllup/internal/ui/pretty"
	"github.com/yaklabco/dllup/pkg/analysis"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 72 // Width of table separators (same for both tables).
	nameColWidth      = 30 // Width of the category or kind column.
	numColWidth       = 8  // Width of numeric columns.
	maxNameLength     = 28 // Maximum characters for a name before truncation.
	maxFilesListWidth = 24 // Maximum characters for the file list column.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Files == 0 && report.Totals.FilesErrored == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No files to classify."))
		return nil
	}

	r.renderCategoryTable(report.ByCategory)
	if len(report.ByKind) > 0 {
		fmt.Fprintln(r.out)
		r.renderKindTable(report.ByKind)
	}

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) separator() {
	fmt.Fprintln(r.out, r.styles.TableBorder.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryRenderer) renderCategoryTable(categories []analysis.CategoryAnalysis) {
	if len(categories) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Regions"))
	r.separator()

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("Category", nameColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
	)
	r.separator()

	for _, category := range categories {
		name := pretty.Truncate(category.Category, maxNameLength)
		fmt.Fprintf(r.out, "%s %s %s\n",
			padRight(name, nameColWidth),
			padLeft(strconv.Itoa(category.Regions), numColWidth),
			padLeft(strconv.Itoa(category.Files), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderKindTable(kinds []analysis.KindAnalysis) {
	fmt.Fprintln(r.out, r.styles.Bold.Render("Diagnostics"))
	r.separator()

	fmt.Fprintf(r.out, "%s %s  %s\n",
		r.styles.TableHeader.Render(padRight("Kind", nameColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render("Files"),
	)
	r.separator()

	for _, kind := range kinds {
		name := pretty.Truncate(kind.Kind, maxNameLength)
		fmt.Fprintf(r.out, "%s %s  %s\n",
			r.styles.Warning.Render(padRight(name, nameColWidth)),
			padLeft(strconv.Itoa(kind.Diagnostics), numColWidth),
			pretty.Truncate(strings.Join(kind.Files, ", "), maxFilesListWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	parts := []string{
		fmt.Sprintf("%d regions, %d references in %d files", totals.Regions, totals.References, totals.Files),
	}

	if totals.Diagnostics > 0 {
		parts = append(parts, r.styles.Warning.Render(
			fmt.Sprintf("%d diagnostics in %d files", totals.Diagnostics, totals.FilesWithDiagnostics)))
	}
	if totals.FilesErrored > 0 {
		parts = append(parts, r.styles.Failure.Render(fmt.Sprintf("%d unreadable", totals.FilesErrored)))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+strings.Join(parts, ", "))
}
