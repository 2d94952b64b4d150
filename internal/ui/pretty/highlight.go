package pretty

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/span"
)

// Highlight renders the document source with every byte styled by the
// innermost span covering it. Nested styles inherit unset properties from
// their ancestors. Bytes outside any region are written unstyled, so with
// colour disabled the output equals the source.
func (s *Styles) Highlight(doc *document.Document, regions []*span.Span) string {
	var builder strings.Builder
	builder.Grow(len(doc.Content))

	plain := lipgloss.NewStyle()
	pos := 0
	for _, region := range regions {
		paint(&builder, plain, doc.Content[pos:region.Start])
		s.highlightNode(&builder, doc.Content, region, plain)
		pos = region.End
	}
	paint(&builder, plain, doc.Content[pos:])

	return builder.String()
}

func (s *Styles) highlightNode(builder *strings.Builder, content []byte, node *span.Span, parent lipgloss.Style) {
	style := s.Category(node.Category).Inherit(parent)

	pos := node.Start
	for _, child := range node.Children {
		paint(builder, style, content[pos:child.Start])
		s.highlightNode(builder, content, child, style)
		pos = child.End
	}
	paint(builder, style, content[pos:node.End])
}

// paint renders text line by line; lipgloss would otherwise pad multi-line
// strings into a block.
func paint(builder *strings.Builder, style lipgloss.Style, text []byte) {
	style = style.TabWidth(lipgloss.NoTabConversion)
	for idx, piece := range bytes.Split(text, []byte{'\n'}) {
		if idx > 0 {
			builder.WriteByte('\n')
		}
		if len(piece) > 0 {
			builder.WriteString(style.Render(string(piece)))
		}
	}
}
