package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/refs"
	"github.com/yaklabco/dllup/pkg/scan"
	"github.com/yaklabco/dllup/pkg/span"
)

type flatSpan struct {
	Category span.Category
	Text     string
}

func scanInline(src string, opts scan.InlineOptions) (*document.Document, []*span.Span) {
	doc := document.FromString(src)
	return doc, scan.Inline(doc, 0, doc.Len(), opts)
}

func flatten(doc *document.Document, spans []*span.Span) []flatSpan {
	var out []flatSpan
	//nolint:errcheck // the callback never fails
	span.WalkAll(spans, func(s *span.Span) error {
		out = append(out, flatSpan{Category: s.Category, Text: string(s.Text(doc.Content))})
		return nil
	})
	return out
}

func TestInline_Rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []flatSpan
	}{
		{
			name:     "escape",
			input:    `\*not bold\*`,
			expected: []flatSpan{{span.Escape, `\*`}, {span.Escape, `\*`}},
		},
		{
			name:     "backslash before ordinary char is plain",
			input:    `a\b`,
			expected: nil,
		},
		{
			name:     "hard break",
			input:    "line  \nnext",
			expected: []flatSpan{{span.HardBreak, "  "}},
		},
		{
			name:     "single spaces are plain",
			input:    "a b c",
			expected: nil,
		},
		{
			name:     "single star is plain",
			input:    "hello *world*",
			expected: nil,
		},
		{
			name:  "bold containing italic",
			input: "**bold _and italic_ text**",
			expected: []flatSpan{
				{span.Bold, "**bold _and italic_ text**"},
				{span.Italic, "_and italic_"},
			},
		},
		{
			name:  "italic containing bold",
			input: "_a **b** c_",
			expected: []flatSpan{
				{span.Italic, "_a **b** c_"},
				{span.Bold, "**b**"},
			},
		},
		{
			name:     "bold needs adjacent non-space",
			input:    "** not bold **",
			expected: nil,
		},
		{
			name:     "intraword underscores are plain",
			input:    "snake_case_name",
			expected: nil,
		},
		{
			name:     "code span hides emphasis",
			input:    "`code with **stars**`",
			expected: []flatSpan{{span.CodeSpan, "`code with **stars**`"}},
		},
		{
			name:     "code span keeps escapes",
			input:    "`a \\` b`",
			expected: []flatSpan{{span.CodeSpan, "`a \\` b`"}, {span.Escape, "\\`"}},
		},
		{
			name:     "unclosed code span is plain",
			input:    "`open",
			expected: nil,
		},
		{
			name:     "inline math",
			input:    "area $\\pi r^2$ here",
			expected: []flatSpan{{span.InlineMath, "$\\pi r^2$"}},
		},
		{
			name:     "escaped dollar does not open math",
			input:    `cost \$5 or $x$`,
			expected: []flatSpan{{span.InlineMath, "$x$"}},
		},
		{
			name:     "escaped backslash before math",
			input:    `\\$x$`,
			expected: []flatSpan{{span.Escape, `\\`}, {span.InlineMath, "$x$"}},
		},
		{
			name:  "inline link with title",
			input: `[text](https://x.test "T")`,
			expected: []flatSpan{
				{span.LinkText, `[text](https://x.test "T")`},
				{span.LinkURL, "https://x.test"},
				{span.LinkTitle, "T"},
			},
		},
		{
			name:  "image",
			input: "![alt](a.png)",
			expected: []flatSpan{
				{span.ImageText, "![alt](a.png)"},
				{span.LinkURL, "a.png"},
			},
		},
		{
			name:  "link tail on next line",
			input: "[text]\n(https://x.test)",
			expected: []flatSpan{
				{span.LinkText, "[text]\n(https://x.test)"},
				{span.LinkURL, "https://x.test"},
			},
		},
		{
			name:  "emphasis inside link text",
			input: "[**b**](u)",
			expected: []flatSpan{
				{span.LinkText, "[**b**](u)"},
				{span.Bold, "**b**"},
				{span.LinkURL, "u"},
			},
		},
		{
			name:     "malformed link is plain",
			input:    "[unclosed (x)",
			expected: nil,
		},
		{
			name:     "citation",
			input:    "as shown (#smith2020).",
			expected: []flatSpan{{span.Citation, "(#smith2020)"}},
		},
		{
			name:     "cross reference",
			input:    "see [#fig1]",
			expected: []flatSpan{{span.CrossReference, "[#fig1]"}},
		},
		{
			name:     "undeclared shorthand is plain",
			input:    "[nobody]",
			expected: nil,
		},
		{
			name:     "uri autolink",
			input:    "<https://x.test/a>",
			expected: []flatSpan{{span.AutoLink, "<https://x.test/a>"}},
		},
		{
			name:     "email autolink",
			input:    "<me@x.test>",
			expected: []flatSpan{{span.AutoLink, "<me@x.test>"}},
		},
		{
			name:     "entities",
			input:    "&amp; &#169; &#x1F600; &bogus",
			expected: []flatSpan{{span.Entity, "&amp;"}, {span.Entity, "&#169;"}, {span.Entity, "&#x1F600;"}},
		},
		{
			name:     "raw html",
			input:    `<span class="x">hi</span>`,
			expected: []flatSpan{{span.RawHTML, `<span class="x">`}, {span.RawHTML, "</span>"}},
		},
		{
			name:     "html comment",
			input:    "a <!-- note --> b",
			expected: []flatSpan{{span.RawHTML, "<!-- note -->"}},
		},
		{
			name:     "bold does not cross lines",
			input:    "**open\nclose**",
			expected: nil,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			doc, spans := scanInline(testCase.input, scan.InlineOptions{AutoLinks: true})
			assert.Equal(t, testCase.expected, flatten(doc, spans))
			for _, s := range spans {
				assert.Empty(t, span.ValidateTree(s))
			}
		})
	}
}

func TestInline_LinkAttributes(t *testing.T) {
	t.Parallel()

	_, spans := scanInline(`[text](https://x.test "Title")`, scan.InlineOptions{})
	require.Len(t, spans, 1)

	link := spans[0].LinkAttrs()
	require.NotNil(t, link)
	assert.Equal(t, "https://x.test", link.URL)
	assert.Equal(t, "Title", link.Title)
	assert.Empty(t, link.RefID)
}

func TestInline_AutoLinksDisabled(t *testing.T) {
	t.Parallel()

	doc, spans := scanInline("<https://x.test>", scan.InlineOptions{AutoLinks: false})
	assert.Empty(t, flatten(doc, spans))

	doc, spans = scanInline("[<https://a.test>](b)", scan.InlineOptions{AutoLinks: true})
	assert.Equal(t, []flatSpan{
		{span.LinkText, "[<https://a.test>](b)"},
		{span.LinkURL, "b"},
	}, flatten(doc, spans), "no automatic links inside link text")
}

func TestInline_ReferenceDefinitionAndUse(t *testing.T) {
	t.Parallel()

	table := refs.NewTable(refs.LastWins)
	src := "[label]: https://x.test \"Title\"\nSee [label][label] and [Label].\n"
	doc := document.FromString(src)
	spans := scan.Inline(doc, 0, doc.Len(), scan.InlineOptions{Definitions: true, Refs: table})

	ref, ok := table.Lookup("label")
	require.True(t, ok)
	assert.Equal(t, "https://x.test", ref.URL)
	assert.Equal(t, "Title", ref.Title)
	assert.Equal(t, 1, ref.Line)

	require.Len(t, spans, 3)
	assert.Equal(t, span.ReferenceDefinition, spans[0].Category)
	assert.Equal(t, `[label]: https://x.test "Title"`, string(spans[0].Text(doc.Content)))
	assert.Equal(t, []span.Category{span.LinkRefID, span.LinkURL, span.LinkTitle},
		[]span.Category{spans[0].Children[0].Category, spans[0].Children[1].Category, spans[0].Children[2].Category})

	full := spans[1]
	assert.Equal(t, span.LinkText, full.Category)
	assert.Equal(t, "[label][label]", string(full.Text(doc.Content)))
	require.NotNil(t, full.LinkAttrs())
	assert.True(t, full.LinkAttrs().Resolved)
	assert.Equal(t, "https://x.test", full.LinkAttrs().URL)

	short := spans[2]
	assert.Equal(t, "[Label]", string(short.Text(doc.Content)))
	assert.True(t, short.LinkAttrs().Resolved)
}

func TestInline_DefinitionRequiresLineStart(t *testing.T) {
	t.Parallel()

	table := refs.NewTable(refs.LastWins)
	doc := document.FromString("text [x]: https://x.test\n")
	scan.Inline(doc, 0, doc.Len(), scan.InlineOptions{Definitions: true, Refs: table})
	assert.Equal(t, 0, table.Len())
}

func TestInline_DefinitionAfterBracketLine(t *testing.T) {
	t.Parallel()

	table := refs.NewTable(refs.LastWins)
	doc := document.FromString("see [x]\n[x]: https://a.test\n")
	spans := scan.Inline(doc, 0, doc.Len(), scan.InlineOptions{Definitions: true, Refs: table})

	ref, ok := table.Lookup("x")
	require.True(t, ok, "the declaration is not taken as a link tail")
	assert.Equal(t, "https://a.test", ref.URL)

	require.Len(t, spans, 1)
	assert.Equal(t, span.ReferenceDefinition, spans[0].Category)
	assert.Equal(t, "[x]: https://a.test", string(spans[0].Text(doc.Content)))
}

func TestInline_DuplicateDefinitionReported(t *testing.T) {
	t.Parallel()

	var diags []scan.Diagnostic
	table := refs.NewTable(refs.FirstWins)
	doc := document.FromString("[a]: https://one.test\n[A]: https://two.test\n")
	scan.Inline(doc, 0, doc.Len(), scan.InlineOptions{
		Definitions: true,
		Refs:        table,
		Report:      func(d scan.Diagnostic) { diags = append(diags, d) },
	})

	require.Len(t, diags, 1)
	assert.Equal(t, scan.DuplicateReference, diags[0].Kind)
	assert.Equal(t, 2, diags[0].Line)

	ref, ok := table.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "https://one.test", ref.URL)
}

func TestInline_UnresolvedReferenceLink(t *testing.T) {
	t.Parallel()

	_, spans := scanInline("[text][missing]", scan.InlineOptions{Refs: refs.NewTable(refs.LastWins)})
	require.Len(t, spans, 1)
	link := spans[0].LinkAttrs()
	require.NotNil(t, link)
	assert.Equal(t, "missing", link.RefID)
	assert.False(t, link.Resolved)
}

func TestInline_Bounds(t *testing.T) {
	t.Parallel()

	doc := document.FromString("**bold**")
	assert.Nil(t, scan.Inline(doc, 5, 2, scan.InlineOptions{}))
	assert.Nil(t, scan.Inline(doc, -4, 0, scan.InlineOptions{}))

	spans := scan.Inline(doc, 0, 100, scan.InlineOptions{})
	require.Len(t, spans, 1)
	assert.Equal(t, span.Bold, spans[0].Category)
}
