package span

// Category classifies what a span represents in the dllup source.
type Category uint16

// Categories form a closed set. Presentation of each category is the job of
// a separate layer (see internal/ui/pretty).
const (
	Uncategorized Category = iota

	// Block regions.
	Paragraph
	Heading1
	Heading2
	Heading3
	Heading4
	Heading5
	Heading6
	CodeBlock
	Quote
	DisplayMath
	Picture
	RawBlock
	SectionDivider
	BigButton
	Table
	BulletItem
	OrderedItem
	HorizontalRule

	// Structural parts of block regions.
	HeadingMarker
	FenceDelimiter
	CodeLanguage
	CodeContent
	QuoteMarker
	MathMarker
	MathContent
	PicKeyword
	PicURL
	PicAlt
	PicCaption
	RawDelimiter
	RawContent
	ButtonMarker
	ButtonText
	ButtonURL
	TableRow
	TableSeparator
	TableDelimiter
	ListMarker

	// Inline spans.
	Escape
	HardBreak
	CodeSpan
	InlineMath
	Bold
	Italic
	LinkText
	ImageText
	LinkURL
	LinkTitle
	LinkRefID
	ReferenceDefinition
	Citation
	CrossReference
	AutoLink
	Entity
	RawHTML

	// Embedded marks a token produced by a sub-grammar; Attrs.Label carries
	// the sub-grammar's own token name.
	Embedded

	categoryCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var categoryNames = [...]string{
	Uncategorized:       "Uncategorized",
	Paragraph:           "Paragraph",
	Heading1:            "Heading1",
	Heading2:            "Heading2",
	Heading3:            "Heading3",
	Heading4:            "Heading4",
	Heading5:            "Heading5",
	Heading6:            "Heading6",
	CodeBlock:           "CodeBlock",
	Quote:               "Quote",
	DisplayMath:         "DisplayMath",
	Picture:             "Picture",
	RawBlock:            "RawBlock",
	SectionDivider:      "SectionDivider",
	BigButton:           "BigButton",
	Table:               "Table",
	BulletItem:          "BulletItem",
	OrderedItem:         "OrderedItem",
	HorizontalRule:      "HorizontalRule",
	HeadingMarker:       "HeadingMarker",
	FenceDelimiter:      "FenceDelimiter",
	CodeLanguage:        "CodeLanguage",
	CodeContent:         "CodeContent",
	QuoteMarker:         "QuoteMarker",
	MathMarker:          "MathMarker",
	MathContent:         "MathContent",
	PicKeyword:          "PicKeyword",
	PicURL:              "PicURL",
	PicAlt:              "PicAlt",
	PicCaption:          "PicCaption",
	RawDelimiter:        "RawDelimiter",
	RawContent:          "RawContent",
	ButtonMarker:        "ButtonMarker",
	ButtonText:          "ButtonText",
	ButtonURL:           "ButtonURL",
	TableRow:            "TableRow",
	TableSeparator:      "TableSeparator",
	TableDelimiter:      "TableDelimiter",
	ListMarker:          "ListMarker",
	Escape:              "Escape",
	HardBreak:           "HardBreak",
	CodeSpan:            "CodeSpan",
	InlineMath:          "InlineMath",
	Bold:                "Bold",
	Italic:              "Italic",
	LinkText:            "LinkText",
	ImageText:           "ImageText",
	LinkURL:             "LinkURL",
	LinkTitle:           "LinkTitle",
	LinkRefID:           "LinkRefID",
	ReferenceDefinition: "ReferenceDefinition",
	Citation:            "Citation",
	CrossReference:      "CrossReference",
	AutoLink:            "AutoLink",
	Entity:              "Entity",
	RawHTML:             "RawHTML",
	Embedded:            "Embedded",
}

// String returns the category name.
func (c Category) String() string {
	if c < categoryCount {
		return categoryNames[c]
	}
	return "Unknown"
}

// ParseCategory looks up a category by its name.
func ParseCategory(name string) (Category, bool) {
	for idx, candidate := range categoryNames {
		if candidate == name {
			return Category(idx), true
		}
	}
	return Uncategorized, false
}

// Categories returns every defined category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for c := range categoryCount {
		out = append(out, c)
	}
	return out
}

// IsBlock reports whether c is a top-level block region category.
func (c Category) IsBlock() bool {
	return c >= Paragraph && c <= HorizontalRule
}

// IsHeading reports whether c is one of Heading1..Heading6.
func (c Category) IsHeading() bool {
	return c >= Heading1 && c <= Heading6
}

// HeadingLevel returns 1..6 for heading categories and 0 otherwise.
func (c Category) HeadingLevel() int {
	if !c.IsHeading() {
		return 0
	}
	return int(c-Heading1) + 1
}

// HeadingCategory returns the heading category for level 1..6.
// Out-of-range levels are clamped.
func HeadingCategory(level int) Category {
	level = max(1, min(level, 6))
	return Heading1 + Category(level-1)
}

// IsInline reports whether c is an inline span category.
func (c Category) IsInline() bool {
	return c >= Escape && c <= RawHTML
}

// Visible reports whether a renderer should show the span's text.
// Reference definitions register links and produce no visible output.
func (c Category) Visible() bool {
	return c != ReferenceDefinition
}
