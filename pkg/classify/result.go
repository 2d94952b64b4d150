package classify

import (
	"bytes"
	"fmt"

	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/refs"
	"github.com/yaklabco/dllup/pkg/scan"
	"github.com/yaklabco/dllup/pkg/span"
)

// Result is the classification of one document.
type Result struct {
	Document *document.Document

	// Blocks are the top-level block regions in document order.
	Blocks []*span.Span

	// Refs holds every reference definition in the document.
	Refs *refs.Table

	// Checkpoints are recorded at every block start, in order.
	Checkpoints []Checkpoint

	Diagnostics []scan.Diagnostic
}

// Header is the article title block that precedes the first section divider.
type Header struct {
	Title   string
	Date    string
	Divider *span.Span
}

// Header returns the article header. A document has one when its first
// section divider is preceded only by paragraphs: the first non-blank line is
// the title and the second, if any, is the date.
func (r *Result) Header() (Header, bool) {
	for idx, region := range r.Blocks {
		switch region.Category {
		case span.Paragraph:
			continue
		case span.SectionDivider:
			if idx == 0 {
				return Header{}, false
			}
			lines := headerLines(r.Document.Content, r.Blocks[:idx])
			header := Header{Title: lines[0], Divider: region}
			if len(lines) > 1 {
				header.Date = lines[1]
			}
			return header, true
		default:
			return Header{}, false
		}
	}
	return Header{}, false
}

func headerLines(content []byte, paragraphs []*span.Span) []string {
	var lines []string
	for _, paragraph := range paragraphs {
		for line := range bytes.SplitSeq(paragraph.Text(content), []byte("\n")) {
			if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
				lines = append(lines, string(trimmed))
			}
		}
	}
	return lines
}

// HasDiagnostics reports whether any degraded input was found.
func (r *Result) HasDiagnostics() bool {
	return len(r.Diagnostics) > 0
}

// resolveLinks points reference-style links at the final definition table
// and reports those whose id is never defined.
func resolveLinks(result *Result) []scan.Diagnostic {
	var diagnostics []scan.Diagnostic

	//nolint:errcheck // the callback never fails
	span.WalkAll(result.Blocks, func(s *span.Span) error {
		if s.Category == span.ReferenceDefinition {
			return nil
		}
		link := s.LinkAttrs()
		if link == nil || link.RefID == "" {
			return nil
		}

		if ref, ok := result.Refs.Lookup(link.RefID); ok {
			link.URL, link.Title, link.Resolved = ref.URL, ref.Title, true
			return nil
		}

		link.URL, link.Title, link.Resolved = "", "", false
		line, _ := result.Document.LineAt(s.Start)
		diagnostics = append(diagnostics, scan.Diagnostic{
			Kind:    scan.UnresolvedReference,
			Line:    line,
			Offset:  s.Start,
			Message: fmt.Sprintf("reference %q is never defined", link.RefID),
		})
		return nil
	})

	return diagnostics
}
