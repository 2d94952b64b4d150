package pretty

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/grammar"
	"github.com/yaklabco/dllup/pkg/refs"
	"github.com/yaklabco/dllup/pkg/span"
)

// Table layout constants.
const (
	linesColumnWidth    = 9
	categoryColumnWidth = 16
	detailColumnWidth   = 24
	tableChrome         = 13 // borders and padding of a four-column table
	minTextWidth        = 16
)

// TableFormatter formats classification results as bordered tables.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a table formatter for the given terminal width.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatRegions lists one row per block region: its line range, category,
// attributes and a truncated quote of its text.
func (t *TableFormatter) FormatRegions(doc *document.Document, regions []*span.Span) string {
	if len(regions) == 0 {
		return ""
	}

	textWidth := max(minTextWidth, t.termWidth-linesColumnWidth-categoryColumnWidth-detailColumnWidth-tableChrome)

	rows := make([][]string, 0, len(regions))
	categories := make([]span.Category, 0, len(regions))
	for _, region := range regions {
		first, _ := doc.LineAt(region.Start)
		last, _ := doc.LineAt(max(region.Start, region.End-1))

		lines := strconv.Itoa(first)
		if last > first {
			lines = fmt.Sprintf("%d-%d", first, last)
		}

		rows = append(rows, []string{
			lines,
			region.Category.String(),
			Truncate(DescribeAttrs(region.Attrs), detailColumnWidth),
			Snippet(region.Text(doc.Content), textWidth),
		})
		categories = append(categories, region.Category)
	}

	return t.newTable("LINES", "CATEGORY", "DETAIL", "TEXT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return t.styles.TableHeader.Padding(0, 1)
			case col == 1 && row >= 0 && row < len(categories):
				return t.styles.Category(categories[row]).Padding(0, 1)
			default:
				return base
			}
		}).
		String() + "\n"
}

// FormatReferences lists the entries of a link reference table.
func (t *TableFormatter) FormatReferences(refTable *refs.Table) string {
	if refTable == nil || refTable.Len() == 0 {
		return ""
	}

	textWidth := max(minTextWidth, (t.termWidth-linesColumnWidth-detailColumnWidth-tableChrome)/2)

	rows := make([][]string, 0, refTable.Len())
	for _, ref := range refTable.References() {
		rows = append(rows, []string{
			strconv.Itoa(ref.Line),
			Truncate(ref.ID, detailColumnWidth),
			Truncate(ref.URL, textWidth),
			Truncate(ref.Title, textWidth),
		})
	}

	return t.newTable("LINE", "ID", "URL", "TITLE").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.styles.TableHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		String() + "\n"
}

// FormatBindings lists sub-grammar bindings by tag.
func (t *TableFormatter) FormatBindings(bindings []grammar.Binding) string {
	if len(bindings) == 0 {
		return ""
	}

	rows := make([][]string, 0, len(bindings))
	for _, binding := range bindings {
		rows = append(rows, []string{binding.Tag, binding.Grammar, binding.Dialect})
	}

	return t.newTable("TAG", "GRAMMAR", "DIALECT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return t.styles.TableHeader.Padding(0, 1)
			case col == 0:
				return t.styles.Category(span.CodeLanguage).Padding(0, 1)
			default:
				return lipgloss.NewStyle().Padding(0, 1)
			}
		}).
		String() + "\n"
}

func (t *TableFormatter) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.styles.TableBorder).
		Headers(headers...)
}
