package analysis_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dllup/pkg/analysis"
	"github.com/yaklabco/dllup/pkg/classify"
	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/runner"
)

func outcome(t *testing.T, path, src string) runner.FileOutcome {
	t.Helper()

	classifier := classify.New(nil, classify.WithHeadingAnchors(true))
	return runner.FileOutcome{
		Path:   path,
		Result: classifier.Classify(document.New(path, []byte(src))),
	}
}

func sampleResult(t *testing.T) *runner.Result {
	t.Helper()

	return &runner.Result{
		Files: []runner.FileOutcome{
			outcome(t, "/work/a.dllu", "Title\n2026-10-19\n\n===\n\n# Intro\n\n[x]: https://x.test\n\nsee [x] and [y][z]\n"),
			outcome(t, "/work/posts/b.dllu", "para one\n\npara two\n\n~~~\nnever closed\n"),
			{Path: "/work/missing.dllu", Error: errors.New("file not found")},
		},
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	opts := analysis.DefaultOptions()
	opts.WorkingDir = "/work"
	report := analysis.Analyze(sampleResult(t), opts)

	assert.Equal(t, analysis.ReportVersion, report.Version)
	assert.False(t, report.Timestamp.IsZero())

	totals := report.Totals
	assert.Equal(t, 2, totals.Files)
	assert.Equal(t, 1, totals.FilesErrored)
	assert.Equal(t, 2, totals.FilesWithDiagnostics)
	assert.Equal(t, 1, totals.References)
	assert.Equal(t, 2, totals.Diagnostics)
	assert.True(t, totals.HasDiagnostics())

	require.Len(t, report.Files, 3)
	first := report.Files[0]
	assert.Equal(t, "a.dllu", first.Path)
	require.NotNil(t, first.Header)
	assert.Equal(t, "Title", first.Header.Title)
	assert.Equal(t, "2026-10-19", first.Header.Date)
	require.Len(t, first.References, 1)
	assert.Equal(t, "https://x.test", first.References[0].URL)
	assert.Len(t, first.Spans, first.Regions)

	assert.Equal(t, filepath.Join("posts", "b.dllu"), report.Files[1].Path)
	assert.Nil(t, report.Files[1].Header)
	assert.Equal(t, "file not found", report.Files[2].Error)

	require.Len(t, report.Diagnostics, 2)
	assert.Equal(t, "unresolved-reference", report.Diagnostics[0].Kind)
	assert.Equal(t, 10, report.Diagnostics[0].Line)
	assert.Equal(t, 13, report.Diagnostics[0].Column)
	assert.Equal(t, "unterminated-fence", report.Diagnostics[1].Kind)

	require.NotEmpty(t, report.ByCategory)
	assert.Equal(t, "Paragraph", report.ByCategory[0].Category, "most frequent category first")
	assert.Equal(t, 2, report.ByCategory[0].Files)

	require.Len(t, report.ByKind, 2)
	assert.Equal(t, []string{"a.dllu"}, report.ByKind[0].Files)
}

func TestAnalyze_Options(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(t), analysis.Options{SortBy: analysis.SortByAlpha})

	assert.Empty(t, report.Diagnostics)
	for _, file := range report.Files {
		assert.Empty(t, file.Spans)
		assert.Empty(t, file.References)
	}
	assert.Equal(t, "/work/a.dllu", report.Files[0].Path)

	require.NotEmpty(t, report.ByCategory)
	for idx := 1; idx < len(report.ByCategory); idx++ {
		assert.Less(t, report.ByCategory[idx-1].Category, report.ByCategory[idx].Category)
	}
}

func TestAnalyze_Nil(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(nil, analysis.DefaultOptions())
	assert.NotNil(t, report.Files)
	assert.Zero(t, report.Totals)
}

func TestSpanEntries(t *testing.T) {
	t.Parallel()

	doc := document.FromString("## Title\n\n* [a](https://a.test)\n")
	result := classify.New(nil, classify.WithHeadingAnchors(true)).Classify(doc)

	entries := analysis.SpanEntries(doc, result.Blocks)
	require.Len(t, entries, 2)

	heading := entries[0]
	assert.Equal(t, "Heading2", heading.Category)
	assert.Equal(t, 2, heading.Level)
	assert.Equal(t, "title", heading.Anchor)
	assert.Equal(t, 1, heading.Line)

	item := entries[1]
	assert.Equal(t, "BulletItem", item.Category)
	assert.Equal(t, 3, item.Line)
	assert.Equal(t, 1, item.Column)

	var link *analysis.LinkEntry
	for _, child := range item.Children {
		if child.Link != nil {
			link = child.Link
		}
	}
	require.NotNil(t, link)
	assert.Equal(t, "https://a.test", link.URL)
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, analysis.SortByCount.IsValid())
	assert.True(t, analysis.SortByAlpha.IsValid())
	assert.False(t, analysis.SortField("severity").IsValid())
}
