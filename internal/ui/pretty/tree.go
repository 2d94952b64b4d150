package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/span"
)

const (
	snippetWidth = 48
	ellipsis     = "…"
)

// FormatTree renders block regions and their descendants as an indented
// tree, one span per line with its byte range, position, attributes and a
// short quote of its text.
func (s *Styles) FormatTree(doc *document.Document, regions []*span.Span) string {
	var builder strings.Builder
	for _, region := range regions {
		s.writeNode(&builder, doc, region, "", "")
	}
	return builder.String()
}

func (s *Styles) writeNode(builder *strings.Builder, doc *document.Document, node *span.Span, branch, indent string) {
	line, col := doc.LineAt(node.Start)

	builder.WriteString(s.TreeBranch.Render(branch))
	builder.WriteString(s.Category(node.Category).Render(node.Category.String()))
	builder.WriteString(" " + s.Range.Render(fmt.Sprintf("[%d,%d)", node.Start, node.End)))
	builder.WriteString(" " + s.Location.Render(fmt.Sprintf("%d:%d", line, col)))
	if attrs := DescribeAttrs(node.Attrs); attrs != "" {
		builder.WriteString(" " + s.Dim.Render(attrs))
	}
	if len(node.Children) == 0 {
		builder.WriteString(" " + Snippet(node.Text(doc.Content), snippetWidth))
	}
	builder.WriteByte('\n')

	for idx, child := range node.Children {
		last := idx == len(node.Children)-1
		childBranch, childIndent := "├─ ", "│  "
		if last {
			childBranch, childIndent = "└─ ", "   "
		}
		s.writeNode(builder, doc, child, indent+childBranch, indent+childIndent)
	}
}

// Snippet quotes text on a single line and truncates it to width cells.
func Snippet(text []byte, width int) string {
	return Truncate(strconv.Quote(string(text)), width)
}

// Truncate shortens s to at most width cells, marking the cut with an
// ellipsis. A non-positive width leaves s unchanged.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	//nolint:gosec // width is positive here
	return truncate.StringWithTail(s, uint(width), ellipsis)
}

// DescribeAttrs renders the set attributes of a span as key=value pairs.
func DescribeAttrs(attrs *span.Attrs) string {
	if attrs == nil {
		return ""
	}

	var parts []string
	if attrs.Level > 0 {
		parts = append(parts, "level="+strconv.Itoa(attrs.Level))
	}
	if attrs.Number > 0 {
		parts = append(parts, "number="+strconv.Itoa(attrs.Number))
	}
	if attrs.Anchor != "" {
		parts = append(parts, "anchor="+attrs.Anchor)
	}
	if attrs.Language != "" {
		lang := "lang=" + attrs.Language
		if attrs.Guessed {
			lang += "?"
		}
		parts = append(parts, lang)
	}
	if attrs.Label != "" {
		parts = append(parts, "token="+attrs.Label)
	}
	if link := attrs.Link; link != nil {
		if link.RefID != "" {
			ref := "ref=" + link.RefID
			if !link.Resolved {
				ref += "!"
			}
			parts = append(parts, ref)
		}
		if link.URL != "" {
			parts = append(parts, "url="+link.URL)
		}
		if link.Title != "" {
			parts = append(parts, "title="+strconv.Quote(link.Title))
		}
	}
	return strings.Join(parts, " ")
}
