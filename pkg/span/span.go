// Package span defines the classified span tree produced by the dllup
// classifier: a half-open byte range tagged with a Category, optionally
// carrying nested child spans.
//
// Invariants maintained by every producer in this module:
//   - a child's range is contained in its parent's range;
//   - siblings are ordered by Start and never overlap;
//   - block regions (top-level spans) never overlap.
package span

import "sort"

// Span is a classified byte range of the normalised document.
type Span struct {
	// Start is the byte index where this span begins (inclusive).
	Start int

	// End is the byte index where this span ends (exclusive).
	End int

	// Category classifies what this span represents.
	Category Category

	// Attrs holds optional category-specific attributes. Nil when unused.
	Attrs *Attrs

	// Children are nested spans ordered by Start.
	Children []*Span

	// Parent is the enclosing span, nil for block regions.
	Parent *Span
}

// Attrs holds category-specific attributes.
type Attrs struct {
	// Level is the heading level or the bullet nesting level (star count).
	Level int

	// Number is the ordinal written in an ordered list marker, or the running
	// number of a heading, picture or display math region.
	Number int

	// Anchor is the slug of a heading or the [#id] anchor of a figure.
	Anchor string

	// Language is the fenced code language hint as written after "lang".
	Language string

	// Guessed is true when Language was inferred rather than declared.
	Guessed bool

	// Label is the sub-grammar's own token name for Embedded spans.
	Label string

	// Link holds link attributes for LinkText, ImageText and AutoLink spans.
	Link *Link
}

// Link holds the destination of a link-like span.
type Link struct {
	// URL is the inline or resolved destination.
	URL string

	// Title is the optional title.
	Title string

	// RefID is the reference id for reference-style links, as written.
	RefID string

	// Resolved is true when RefID was found in the link reference table.
	Resolved bool
}

// New creates a span without attributes.
func New(category Category, start, end int) *Span {
	return &Span{Start: start, End: end, Category: category}
}

// WithAttrs sets the attributes and returns the span for chaining.
func (s *Span) WithAttrs(attrs *Attrs) *Span {
	s.Attrs = attrs
	return s
}

// Len returns the length of the span in bytes.
func (s *Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span has zero length.
func (s *Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains reports whether offset lies within the span.
func (s *Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Encloses reports whether other lies entirely within s.
func (s *Span) Encloses(other *Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Text returns the source text covered by the span.
func (s *Span) Text(content []byte) []byte {
	if s.Start < 0 || s.End > len(content) || s.Start > s.End {
		return nil
	}
	return content[s.Start:s.End]
}

// Append adds children, setting their parent pointer. Children must be
// appended in order.
func (s *Span) Append(children ...*Span) {
	for _, child := range children {
		if child == nil {
			continue
		}
		child.Parent = s
		s.Children = append(s.Children, child)
	}
}

// SortChildren orders children by Start, keeping the relative order of
// equal starts. Producers that append out of order call this once.
func (s *Span) SortChildren() {
	sort.SliceStable(s.Children, func(i, j int) bool {
		return s.Children[i].Start < s.Children[j].Start
	})
}

// Shift moves the span and all descendants by delta bytes.
func (s *Span) Shift(delta int) {
	s.Start += delta
	s.End += delta
	for _, child := range s.Children {
		child.Shift(delta)
	}
}

// Clone returns a deep copy of the span subtree. The copy's Parent is nil.
func (s *Span) Clone() *Span {
	if s == nil {
		return nil
	}
	out := &Span{Start: s.Start, End: s.End, Category: s.Category}
	if s.Attrs != nil {
		attrs := *s.Attrs
		if s.Attrs.Link != nil {
			link := *s.Attrs.Link
			attrs.Link = &link
		}
		out.Attrs = &attrs
	}
	for _, child := range s.Children {
		out.Append(child.Clone())
	}
	return out
}

// Child returns the first direct child of the given category, or nil.
func (s *Span) Child(category Category) *Span {
	for _, child := range s.Children {
		if child.Category == category {
			return child
		}
	}
	return nil
}

// LinkAttrs returns the link attributes, or nil.
func (s *Span) LinkAttrs() *Link {
	if s.Attrs == nil {
		return nil
	}
	return s.Attrs.Link
}
