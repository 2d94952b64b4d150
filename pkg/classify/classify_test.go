package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dllup/pkg/classify"
	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/refs"
	"github.com/yaklabco/dllup/pkg/scan"
	"github.com/yaklabco/dllup/pkg/span"
)

func text(doc *document.Document, s *span.Span) string {
	return string(s.Text(doc.Content))
}

func TestClassify_HeadingAndPlainStars(t *testing.T) {
	t.Parallel()

	doc := document.FromString("# Title\n\nhello *world*\n")
	result := classify.New(nil).Classify(doc)

	require.Len(t, result.Blocks, 2)
	heading := result.Blocks[0]
	assert.Equal(t, span.Heading1, heading.Category)
	assert.Equal(t, "# Title", text(doc, heading))
	require.Len(t, heading.Children, 1)
	assert.Equal(t, span.HeadingMarker, heading.Children[0].Category)

	paragraph := result.Blocks[1]
	assert.Equal(t, span.Paragraph, paragraph.Category)
	assert.Empty(t, paragraph.Children, "single stars have no rule")
	assert.Nil(t, span.FindFirst(result.Blocks, func(s *span.Span) bool {
		return s.Category == span.Italic || s.Category == span.Bold
	}))
	assert.Empty(t, result.Diagnostics)
}

func TestClassify_BoldContainingItalic(t *testing.T) {
	t.Parallel()

	doc := document.FromString("**bold _and italic_ text**\n")
	result := classify.New(nil).Classify(doc)

	require.Len(t, result.Blocks, 1)
	paragraph := result.Blocks[0]
	require.Len(t, paragraph.Children, 1)

	bold := paragraph.Children[0]
	assert.Equal(t, span.Bold, bold.Category)
	assert.Equal(t, "**bold _and italic_ text**", text(doc, bold))
	require.Len(t, bold.Children, 1)
	assert.Equal(t, span.Italic, bold.Children[0].Category)
	assert.Equal(t, "_and italic_", text(doc, bold.Children[0]))
}

func TestClassify_CodeSpanIsLiteral(t *testing.T) {
	t.Parallel()

	doc := document.FromString("`code with *stars*`\n")
	result := classify.New(nil).Classify(doc)

	require.Len(t, result.Blocks, 1)
	require.Len(t, result.Blocks[0].Children, 1)
	code := result.Blocks[0].Children[0]
	assert.Equal(t, span.CodeSpan, code.Category)
	assert.Empty(t, code.Children)
}

func TestClassify_ReferenceDefinition(t *testing.T) {
	t.Parallel()

	doc := document.FromString("[label]: https://x.test \"Title\"\nSee [label][label].\n")
	result := classify.New(nil).Classify(doc)

	ref, ok := result.Refs.Lookup("label")
	require.True(t, ok)
	assert.Equal(t, "label", ref.ID)
	assert.Equal(t, "https://x.test", ref.URL)
	assert.Equal(t, "Title", ref.Title)

	link := span.FindFirst(result.Blocks, func(s *span.Span) bool { return s.Category == span.LinkText })
	require.NotNil(t, link)
	assert.Equal(t, "[label][label]", text(doc, link))
	require.NotNil(t, link.LinkAttrs())
	assert.True(t, link.LinkAttrs().Resolved)
	assert.Equal(t, "https://x.test", link.LinkAttrs().URL)
	assert.Equal(t, "Title", link.LinkAttrs().Title)
	assert.Empty(t, result.Diagnostics)
}

func TestClassify_UnterminatedFenceAtEnd(t *testing.T) {
	t.Parallel()

	doc := document.FromString("text\n\n~~~\n")
	result := classify.New(nil).Classify(doc)

	require.Len(t, result.Blocks, 2)
	fence := result.Blocks[1]
	assert.Equal(t, span.CodeBlock, fence.Category)
	assert.Equal(t, doc.Lines[doc.LineCount()-1].NewlineStart, fence.End, "runs through the last line")
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, scan.UnterminatedFence, result.Diagnostics[0].Kind)
}

func TestClassify_DuplicatePolicy(t *testing.T) {
	t.Parallel()

	src := "[a]: https://one.test\n[a]: https://two.test\n\nGo [there][a].\n"

	tests := []struct {
		policy   refs.Policy
		expected string
	}{
		{refs.LastWins, "https://two.test"},
		{refs.FirstWins, "https://one.test"},
	}

	for _, testCase := range tests {
		t.Run(string(testCase.policy), func(t *testing.T) {
			t.Parallel()

			result := classify.New(nil, classify.WithDuplicatePolicy(testCase.policy)).
				Classify(document.FromString(src))

			ref, ok := result.Refs.Lookup("a")
			require.True(t, ok)
			assert.Equal(t, testCase.expected, ref.URL)

			link := span.FindFirst(result.Blocks, func(s *span.Span) bool { return s.Category == span.LinkText })
			require.NotNil(t, link)
			assert.Equal(t, testCase.expected, link.LinkAttrs().URL)

			require.Len(t, result.Diagnostics, 1)
			assert.Equal(t, scan.DuplicateReference, result.Diagnostics[0].Kind)
			assert.Equal(t, 2, result.Diagnostics[0].Line)
		})
	}
}

func TestClassify_ForwardReference(t *testing.T) {
	t.Parallel()

	doc := document.FromString("[x][later]\n\n[later]: https://l.test\n")
	classifier := classify.New(nil)

	result := classifier.Classify(doc)
	link := span.FindFirst(result.Blocks, func(s *span.Span) bool { return s.Category == span.LinkText })
	require.NotNil(t, link)
	assert.True(t, link.LinkAttrs().Resolved)
	assert.Equal(t, "https://l.test", link.LinkAttrs().URL)
	assert.Empty(t, result.Diagnostics)

	for region := range classifier.Blocks(doc) {
		lazy := span.FindFirst([]*span.Span{region}, func(s *span.Span) bool { return s.Category == span.LinkText })
		require.NotNil(t, lazy)
		assert.False(t, lazy.LinkAttrs().Resolved, "lazy scanning only sees earlier definitions")
		break
	}
}

func TestClassify_DefinitionBelowBracketLine(t *testing.T) {
	t.Parallel()

	doc := document.FromString("see [x]\n[x]: https://a.test\n")
	result := classify.New(nil).Classify(doc)

	ref, ok := result.Refs.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "https://a.test", ref.URL)
	assert.Empty(t, result.Diagnostics)
}

func TestClassify_UnresolvedReference(t *testing.T) {
	t.Parallel()

	doc := document.FromString("intro\n\n[x][nope]\n")
	result := classify.New(nil).Classify(doc)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, scan.UnresolvedReference, result.Diagnostics[0].Kind)
	assert.Equal(t, 3, result.Diagnostics[0].Line)
	assert.True(t, result.HasDiagnostics())
}

func TestClassify_EmptyDocument(t *testing.T) {
	t.Parallel()

	result := classify.New(nil).Classify(document.FromString(""))
	assert.Empty(t, result.Blocks)
	assert.Empty(t, result.Checkpoints)
	assert.Equal(t, 0, result.Refs.Len())

	result = classify.New(nil).Classify(document.FromString("\n \n\t\n"))
	assert.Empty(t, result.Blocks)
}

func TestClassify_Checkpoints(t *testing.T) {
	t.Parallel()

	doc := document.FromString("[a]: https://a.test\n\n# One\n\n~~~\nx\n\ny\n~~~\n\nlast\n")
	result := classify.New(nil, classify.WithHeadingAnchors(true)).Classify(doc)

	require.Len(t, result.Blocks, 4)
	require.Len(t, result.Checkpoints, 4)

	lines := make([]int, 0, len(result.Checkpoints))
	for idx, cp := range result.Checkpoints {
		lines = append(lines, cp.Line)
		assert.Equal(t, result.Blocks[idx].Start, cp.Offset)
	}
	assert.Equal(t, []int{0, 2, 4, 10}, lines)

	assert.Empty(t, result.Checkpoints[0].References())
	assert.Len(t, result.Checkpoints[1].References(), 1)

	assert.Equal(t, 0, result.SafeCheckpoint(0).Line)
	assert.Equal(t, 0, result.SafeCheckpoint(2).Line)
	assert.Equal(t, 2, result.SafeCheckpoint(3).Line)
	assert.Equal(t, 4, result.SafeCheckpoint(7).Line, "a line inside a fence restarts at the fence")
	assert.Equal(t, 10, result.SafeCheckpoint(99).Line)
}

func TestClassify_Resume(t *testing.T) {
	t.Parallel()

	doc := document.FromString("# A\n\n# A\n\n# A\n")
	classifier := classify.New(nil, classify.WithHeadingAnchors(true))
	result := classifier.Classify(doc)
	require.Len(t, result.Checkpoints, 3)

	var anchors []string
	var numbers []int
	for region := range classifier.Resume(doc, result.Checkpoints[1]) {
		anchors = append(anchors, region.Attrs.Anchor)
		numbers = append(numbers, region.Attrs.Number)
	}
	assert.Equal(t, []string{"a-2", "a-3"}, anchors)
	assert.Equal(t, []int{2, 3}, numbers, "section numbers continue from the checkpoint")
}

func TestResult_Header(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		ok    bool
		title string
		date  string
	}{
		{
			name:  "title and date",
			input: "My Title\nOctober 2026\n\n===\n\n# Body\n",
			ok:    true,
			title: "My Title",
			date:  "October 2026",
		},
		{
			name:  "title only",
			input: "Just a title\n===\n",
			ok:    true,
			title: "Just a title",
		},
		{
			name:  "heading before divider",
			input: "# Heading\n===\n",
		},
		{
			name:  "divider first",
			input: "===\ntext\n",
		},
		{
			name:  "no divider",
			input: "just text\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := classify.New(nil).Classify(document.FromString(testCase.input))
			header, ok := result.Header()
			assert.Equal(t, testCase.ok, ok)
			assert.Equal(t, testCase.title, header.Title)
			assert.Equal(t, testCase.date, header.Date)
			if ok {
				assert.Equal(t, span.SectionDivider, header.Divider.Category)
			}
		})
	}
}

func TestNewWithGrammars_SelfGrammar(t *testing.T) {
	t.Parallel()

	classifier := classify.NewWithGrammars([]string{"dllup", "go"})
	assert.Empty(t, classifier.Registry().Warnings())

	doc := document.FromString("~~~\nlang dllup\n# inner **b**\n~~~\n")
	result := classifier.Classify(doc)
	require.Len(t, result.Blocks, 1)

	content := result.Blocks[0].Child(span.CodeContent)
	require.NotNil(t, content)
	require.Len(t, content.Children, 1)

	inner := content.Children[0]
	assert.Equal(t, span.Heading1, inner.Category)
	assert.Equal(t, "# inner **b**", text(doc, inner))
	assert.NotNil(t, inner.Child(span.Bold))
	assert.Empty(t, span.ValidateRegions(result.Blocks, doc.Len()))
}

func TestNewWithGrammars_ChromaEmbedding(t *testing.T) {
	t.Parallel()

	classifier := classify.NewWithGrammars(nil, classify.WithGuessUntagged(true))
	doc := document.FromString("~~~\npackage main\n\nfunc main() {}\n~~~\n")
	result := classifier.Classify(doc)

	require.Len(t, result.Blocks, 1)
	code := result.Blocks[0]
	assert.Equal(t, "go", code.Attrs.Language)
	assert.True(t, code.Attrs.Guessed)

	content := code.Child(span.CodeContent)
	require.NotNil(t, content)
	assert.NotEmpty(t, content.Children)
	for _, token := range content.Children {
		assert.Equal(t, span.Embedded, token.Category)
		assert.NotEmpty(t, token.Attrs.Label)
	}
	assert.Empty(t, result.Diagnostics)
}
