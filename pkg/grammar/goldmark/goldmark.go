// Package goldmark provides a sub-grammar classifier for embedded Markdown
// using the goldmark parser.
package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/dllup/pkg/span"
)

// Markdown flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Labels attached to Embedded spans.
const (
	LabelHeading       = "Heading"
	LabelEmphasis      = "Emphasis"
	LabelStrong        = "Strong"
	LabelCodeSpan      = "CodeSpan"
	LabelCodeBlock     = "CodeBlock"
	LabelLink          = "Link"
	LabelImage         = "Image"
	LabelAutoLink      = "AutoLink"
	LabelRawHTML       = "RawHTML"
	LabelStrikethrough = "Strikethrough"
)

// Classifier classifies embedded Markdown.
type Classifier struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a classifier for the given flavor. Unknown flavors default to
// CommonMark.
func New(flavor string) *Classifier {
	f := flavorOrDefault(flavor)
	return &Classifier{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (c *Classifier) Flavor() string {
	return c.flavor
}

// Classify parses content and returns spans for headings, emphasis, code,
// links and raw HTML. Offsets are relative to content.
func (c *Classifier) Classify(content []byte) ([]*span.Span, error) {
	if len(content) == 0 {
		return nil, nil
	}

	reader := text.NewReader(content)
	doc := c.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	m := &mapper{content: content}
	root := span.New(span.Embedded, 0, len(content))
	m.mapChildren(doc, root)

	spans := root.Children
	for _, s := range spans {
		s.Parent = nil
	}
	return spans, nil
}

func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(opts...)
}

// mapper converts goldmark nodes into Embedded spans nested under parent.
type mapper struct {
	content []byte

	// autoLinkEnd is the end of the last autolink placed.
	autoLinkEnd int
}

func (m *mapper) mapChildren(gmParent ast.Node, parent *span.Span) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapNode(child, parent)
	}
}

func (m *mapper) mapNode(gmNode ast.Node, parent *span.Span) {
	var (
		label      string
		start, end int
	)

	switch gmn := gmNode.(type) {
	case *ast.Heading:
		label = LabelHeading
		start, end = m.lineExtent(gmNode)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		label = LabelCodeBlock
		start, end = blockRange(gmNode)

	case *ast.Emphasis:
		label = LabelEmphasis
		if gmn.Level >= 2 {
			label = LabelStrong
		}
		start, end = inlineRange(gmNode)
		start, end = m.widen(start, end, gmn.Level)

	case *ast.CodeSpan:
		label = LabelCodeSpan
		start, end = inlineRange(gmNode)
		start, end = m.widenByte(start, end, '`')

	case *ast.Link:
		label = LabelLink
		start, end = inlineRange(gmNode)

	case *ast.Image:
		label = LabelImage
		start, end = inlineRange(gmNode)

	case *ast.AutoLink:
		label = LabelAutoLink
		start, end = m.autoLinkRange(gmn)

	case *ast.RawHTML:
		label = LabelRawHTML
		start, end = segmentsRange(gmn.Segments)

	case *east.Strikethrough:
		label = LabelStrikethrough
		start, end = inlineRange(gmNode)
		start, end = m.widen(start, end, 2)

	default:
		m.mapChildren(gmNode, parent)
		return
	}

	if start < parent.Start || end > parent.End || start >= end {
		m.mapChildren(gmNode, parent)
		return
	}
	if n := len(parent.Children); n > 0 && parent.Children[n-1].End > start {
		return
	}

	node := span.New(span.Embedded, start, end).WithAttrs(&span.Attrs{Label: label})
	if heading, ok := gmNode.(*ast.Heading); ok {
		node.Attrs.Level = heading.Level
	}
	parent.Append(node)

	switch gmNode.(type) {
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.CodeSpan, *ast.AutoLink, *ast.RawHTML:
	default:
		m.mapChildren(gmNode, node)
	}
}

// lineExtent widens a block node's first line segment to the full source line.
func (m *mapper) lineExtent(gmNode ast.Node) (int, int) {
	start, end := blockRange(gmNode)
	if start < 0 {
		return -1, -1
	}
	lineStart := bytes.LastIndexByte(m.content[:start], '\n') + 1
	lineEnd := len(m.content)
	if idx := bytes.IndexByte(m.content[end:], '\n'); idx >= 0 {
		lineEnd = end + idx
	}
	return lineStart, lineEnd
}

// widen extends [start,end) by count delimiter bytes on each side when the
// source has them there.
func (m *mapper) widen(start, end, count int) (int, int) {
	if start < count || end+count > len(m.content) {
		return start, end
	}
	return start - count, end + count
}

func (m *mapper) widenByte(start, end int, delim byte) (int, int) {
	if start < 0 {
		return start, end
	}
	for start > 0 && m.content[start-1] == delim {
		start--
	}
	for end < len(m.content) && m.content[end] == delim {
		end++
	}
	return start, end
}

// autoLinkRange locates an autolink, which carries no segment of its own, by
// searching for its label between the siblings around it.
func (m *mapper) autoLinkRange(link *ast.AutoLink) (int, int) {
	url := link.Label(m.content)
	if len(url) == 0 {
		return -1, -1
	}
	from := max(m.autoLinkEnd, precedingEnd(link))
	to := followingStart(link, len(m.content))
	if from >= to {
		return -1, -1
	}
	window := m.content[from:to]

	var start, end int
	if idx := bytes.Index(window, []byte("<"+string(url)+">")); idx >= 0 {
		start, end = from+idx, from+idx+len(url)+2
	} else if idx := bytes.Index(window, url); idx >= 0 {
		start, end = from+idx, from+idx+len(url)
	} else {
		return -1, -1
	}
	m.autoLinkEnd = end
	return start, end
}

// followingStart returns the offset where the nearest following sibling with
// source text starts, or limit.
func followingStart(node ast.Node, limit int) int {
	for next := node.NextSibling(); next != nil; next = next.NextSibling() {
		if start, _ := inlineRange(next); start >= 0 {
			return min(start, limit)
		}
	}
	return limit
}

// precedingEnd returns the offset where the nearest preceding sibling with
// source text ends, or the start of the enclosing block.
func precedingEnd(node ast.Node) int {
	for prev := node.PreviousSibling(); prev != nil; prev = prev.PreviousSibling() {
		if _, end := inlineRange(prev); end > 0 {
			return end
		}
	}
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		if parent.Type() == ast.TypeBlock {
			if start, _ := blockRange(parent); start >= 0 {
				return start
			}
		}
	}
	return 0
}

func blockRange(gmNode ast.Node) (int, int) {
	lines := gmNode.Lines()
	if lines == nil || lines.Len() == 0 {
		return -1, -1
	}
	return lines.At(0).Start, lines.At(lines.Len() - 1).Stop
}

// inlineRange covers all text descendants of an inline node.
func inlineRange(gmNode ast.Node) (int, int) {
	start, end := -1, -1
	_ = ast.Walk(gmNode, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var seg text.Segment
		switch n := node.(type) {
		case *ast.Text:
			seg = n.Segment
		case *ast.RawHTML:
			s, e := segmentsRange(n.Segments)
			seg = text.NewSegment(s, e)
		default:
			return ast.WalkContinue, nil
		}
		if seg.Start < 0 || seg.Stop <= seg.Start {
			return ast.WalkContinue, nil
		}
		if start == -1 || seg.Start < start {
			start = seg.Start
		}
		if seg.Stop > end {
			end = seg.Stop
		}
		return ast.WalkContinue, nil
	})
	return start, end
}

func segmentsRange(segs *text.Segments) (int, int) {
	if segs == nil || segs.Len() == 0 {
		return -1, -1
	}
	start, end := -1, -1
	for i := range segs.Len() {
		seg := segs.At(i)
		if start == -1 || seg.Start < start {
			start = seg.Start
		}
		if seg.Stop > end {
			end = seg.Stop
		}
	}
	return start, end
}
