package goldmark_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dllup/pkg/grammar/goldmark"
	"github.com/yaklabco/dllup/pkg/span"
)

func TestNew_FlavorDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, goldmark.FlavorCommonMark, goldmark.New("").Flavor())
	assert.Equal(t, goldmark.FlavorCommonMark, goldmark.New("bogus").Flavor())
	assert.Equal(t, goldmark.FlavorGFM, goldmark.New(goldmark.FlavorGFM).Flavor())
}

func TestClassify_Constructs(t *testing.T) {
	t.Parallel()

	content := []byte("# Title\n\nSome *em* and **strong** and `code`.\n")
	spans, err := goldmark.New(goldmark.FlavorCommonMark).Classify(content)
	require.NoError(t, err)

	found := map[string]string{}
	require.NoError(t, span.WalkAll(spans, func(s *span.Span) error {
		found[s.Attrs.Label] = string(s.Text(content))
		return nil
	}))

	assert.Equal(t, "# Title", found[goldmark.LabelHeading])
	assert.Equal(t, "*em*", found[goldmark.LabelEmphasis])
	assert.Equal(t, "**strong**", found[goldmark.LabelStrong])
	assert.Equal(t, "`code`", found[goldmark.LabelCodeSpan])
}

func TestClassify_InvariantsHold(t *testing.T) {
	t.Parallel()

	content := []byte("Text with [a link](https://x.test) and **bold _nested_**.\n\n~~~go\nx := 1\n~~~\n")
	spans, err := goldmark.New(goldmark.FlavorGFM).Classify(content)
	require.NoError(t, err)
	require.NotEmpty(t, spans)

	prevEnd := 0
	for _, s := range spans {
		assert.Nil(t, s.Parent)
		assert.GreaterOrEqual(t, s.Start, prevEnd)
		assert.LessOrEqual(t, s.End, len(content))
		assert.Empty(t, span.ValidateTree(s))
		prevEnd = s.End
	}
}

func TestClassify_AutoLinkRepeatedURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []int
	}{
		{
			name:    "plain text in an earlier paragraph",
			content: "see https://x.test here\n\nlink <https://x.test>\n",
			want:    []int{30},
		},
		{
			name:    "plain text earlier in the same paragraph",
			content: "see https://x.test or <https://x.test>\n",
			want:    []int{22},
		},
		{
			name:    "two autolinks to one url",
			content: "<https://x.test> and <https://x.test>\n",
			want:    []int{0, 21},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content := []byte(tt.content)
			spans, err := goldmark.New(goldmark.FlavorCommonMark).Classify(content)
			require.NoError(t, err)

			var starts []int
			require.NoError(t, span.WalkAll(spans, func(s *span.Span) error {
				if s.Attrs.Label == goldmark.LabelAutoLink {
					assert.Equal(t, "<https://x.test>", string(s.Text(content)))
					starts = append(starts, s.Start)
				}
				return nil
			}))
			assert.Equal(t, tt.want, starts)
		})
	}
}

func TestClassify_Empty(t *testing.T) {
	t.Parallel()

	spans, err := goldmark.New("").Classify(nil)
	require.NoError(t, err)
	assert.Empty(t, spans)
}
