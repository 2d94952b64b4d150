package span_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dllup/pkg/span"
)

func TestCategory_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category span.Category
		expected string
	}{
		{span.Heading1, "Heading1"},
		{span.CodeSpan, "CodeSpan"},
		{span.Embedded, "Embedded"},
		{span.Uncategorized, "Uncategorized"},
		{span.Category(9999), "Unknown"},
	}

	for _, testCase := range tests {
		t.Run(testCase.expected, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, testCase.category.String())
		})
	}
}

func TestCategory_RoundTripNames(t *testing.T) {
	t.Parallel()

	for _, category := range span.Categories() {
		parsed, ok := span.ParseCategory(category.String())
		require.True(t, ok, category.String())
		assert.Equal(t, category, parsed)
	}

	_, ok := span.ParseCategory("NoSuchCategory")
	assert.False(t, ok)
}

func TestCategory_Predicates(t *testing.T) {
	t.Parallel()

	assert.True(t, span.Paragraph.IsBlock())
	assert.True(t, span.HorizontalRule.IsBlock())
	assert.False(t, span.HeadingMarker.IsBlock())
	assert.False(t, span.Bold.IsBlock())

	assert.True(t, span.Bold.IsInline())
	assert.False(t, span.Embedded.IsInline())

	assert.Equal(t, 3, span.Heading3.HeadingLevel())
	assert.Equal(t, 0, span.Paragraph.HeadingLevel())
	assert.Equal(t, span.Heading6, span.HeadingCategory(9))
	assert.Equal(t, span.Heading1, span.HeadingCategory(0))

	assert.False(t, span.ReferenceDefinition.Visible())
	assert.True(t, span.LinkText.Visible())
}

func TestValidateTree(t *testing.T) {
	t.Parallel()

	t.Run("valid nesting", func(t *testing.T) {
		t.Parallel()
		root := span.New(span.Paragraph, 0, 20)
		bold := span.New(span.Bold, 0, 10)
		bold.Append(span.New(span.Italic, 3, 7))
		root.Append(bold, span.New(span.CodeSpan, 12, 18))
		assert.Empty(t, span.ValidateTree(root))
	})

	t.Run("child escapes parent", func(t *testing.T) {
		t.Parallel()
		root := span.New(span.Paragraph, 0, 5)
		root.Append(span.New(span.Bold, 3, 9))
		violations := span.ValidateTree(root)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Error(), "escapes parent")
	})

	t.Run("siblings overlap", func(t *testing.T) {
		t.Parallel()
		root := span.New(span.Paragraph, 0, 20)
		root.Append(span.New(span.Bold, 0, 10), span.New(span.Italic, 5, 12))
		violations := span.ValidateTree(root)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Message, "overlaps")
	})
}

func TestValidateRegions(t *testing.T) {
	t.Parallel()

	regions := []*span.Span{
		span.New(span.Heading1, 0, 7),
		span.New(span.Paragraph, 9, 22),
	}
	assert.Empty(t, span.ValidateRegions(regions, 23))

	overlapping := []*span.Span{
		span.New(span.Paragraph, 0, 10),
		span.New(span.Paragraph, 5, 12),
	}
	assert.NotEmpty(t, span.ValidateRegions(overlapping, 12))

	notBlock := []*span.Span{span.New(span.Bold, 0, 3)}
	assert.NotEmpty(t, span.ValidateRegions(notBlock, 3))
}

func TestSpan_CloneAndEqual(t *testing.T) {
	t.Parallel()

	root := span.New(span.Paragraph, 0, 30)
	link := span.New(span.LinkText, 4, 12).WithAttrs(&span.Attrs{
		Link: &span.Link{URL: "https://x.test", RefID: "x", Resolved: true},
	})
	root.Append(link)

	clone := root.Clone()
	require.NotSame(t, root, clone)
	assert.True(t, span.Equal(root, clone))
	assert.Same(t, clone, clone.Children[0].Parent)

	clone.Children[0].Attrs.Link.URL = "changed"
	assert.Equal(t, "https://x.test", link.Attrs.Link.URL)
	assert.False(t, span.Equal(root, clone))
}

func TestSpan_ShiftAndText(t *testing.T) {
	t.Parallel()

	content := []byte("xx**bold**")
	bold := span.New(span.Bold, 0, 8)
	bold.Append(span.New(span.Uncategorized, 2, 6))
	bold.Shift(2)

	assert.Equal(t, "**bold**", string(bold.Text(content)))
	assert.Equal(t, 4, bold.Children[0].Start)
	assert.Nil(t, span.New(span.Bold, 5, 50).Text(content))
}

func TestWalkHelpers(t *testing.T) {
	t.Parallel()

	para := span.New(span.Paragraph, 0, 20)
	bold := span.New(span.Bold, 0, 10)
	bold.Append(span.New(span.Italic, 2, 8))
	para.Append(bold, span.New(span.Italic, 12, 18))
	regions := []*span.Span{para, span.New(span.HorizontalRule, 21, 26)}

	italics := span.FindByCategory(regions, span.Italic)
	require.Len(t, italics, 2)
	assert.Equal(t, 2, italics[0].Start)

	first := span.FindFirst(regions, func(s *span.Span) bool { return s.Category == span.HorizontalRule })
	require.NotNil(t, first)
	assert.Equal(t, 21, first.Start)

	counts := span.CountByCategory(regions)
	assert.Equal(t, 2, counts[span.Italic])
	assert.Equal(t, 1, counts[span.Paragraph])
}
