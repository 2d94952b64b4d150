package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/scan"
)

// FormatDiagnostic formats a single diagnostic for terminal output. When doc
// is non-nil and showContext is set, the offending line is printed with a
// caret under the diagnostic's column.
func (s *Styles) FormatDiagnostic(path string, diag scan.Diagnostic, doc *document.Document, showContext bool) string {
	var builder strings.Builder

	column := 0
	if doc != nil {
		_, column = doc.LineAt(diag.Offset)
	}

	location := fmt.Sprintf("%s:%d", s.FilePath.Render(path), diag.Line)
	if column > 0 {
		location += fmt.Sprintf(":%d", column)
	}

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.Warning.Render("warning"),
		s.Message.Render(diag.Message),
		s.Kind.Render("("+string(diag.Kind)+")"),
	)

	if showContext && doc != nil {
		if line := doc.LineContent(diag.Line); line != nil {
			builder.WriteString(s.FormatSourceContext(string(line), column))
		}
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")
	if column > 0 {
		builder.WriteString(indent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, count int) string {
	header := s.FilePath.Render(path)
	if count > 0 {
		noun := "diagnostics"
		if count == 1 {
			noun = "diagnostic"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", count, noun))
	}
	return header
}
