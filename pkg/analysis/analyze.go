package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/dllup/pkg/classify"
	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/runner"
	"github.com/yaklabco/dllup/pkg/span"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	categories    map[string]*CategoryAnalysis
	categoryFiles map[string]map[string]bool
	kinds         map[string]*KindAnalysis
	kindFiles     map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		categories:    make(map[string]*CategoryAnalysis),
		categoryFiles: make(map[string]map[string]bool),
		kinds:         make(map[string]*KindAnalysis),
		kindFiles:     make(map[string]map[string]bool),
	}
}

func (ctx *analysisContext) countRegion(path string, category span.Category) {
	name := category.String()
	ca, ok := ctx.categories[name]
	if !ok {
		ca = &CategoryAnalysis{Category: name}
		ctx.categories[name] = ca
		ctx.categoryFiles[name] = make(map[string]bool)
	}
	ca.Regions++
	ctx.categoryFiles[name][path] = true
}

func (ctx *analysisContext) countDiagnostic(path, kind string) {
	ka, ok := ctx.kinds[kind]
	if !ok {
		ka = &KindAnalysis{Kind: kind}
		ctx.kinds[kind] = ka
		ctx.kindFiles[kind] = make(map[string]bool)
	}
	ka.Diagnostics++
	ctx.kindFiles[kind][path] = true
}

func (ctx *analysisContext) buildByCategory(opts Options) []CategoryAnalysis {
	result := make([]CategoryAnalysis, 0, len(ctx.categories))
	for name, ca := range ctx.categories {
		ca.Files = len(ctx.categoryFiles[name])
		result = append(result, *ca)
	}
	sortBy(result, opts, func(c CategoryAnalysis) (string, int) { return c.Category, c.Regions })
	return result
}

func (ctx *analysisContext) buildByKind(opts Options) []KindAnalysis {
	result := make([]KindAnalysis, 0, len(ctx.kinds))
	for kind, ka := range ctx.kinds {
		for path := range ctx.kindFiles[kind] {
			ka.Files = append(ka.Files, path)
		}
		slices.Sort(ka.Files)
		result = append(result, *ka)
	}
	sortBy(result, opts, func(k KindAnalysis) (string, int) { return k.Kind, k.Diagnostics })
	return result
}

// Analyze transforms a runner.Result into a Report in a single pass.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now().UTC(),
		Files:     []FileReport{},
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		displayPath := makeRelativePath(file.Path, opts.WorkingDir)
		entry := FileReport{Path: displayPath}

		if file.Error != nil {
			entry.Error = file.Error.Error()
			report.Totals.FilesErrored++
			report.Files = append(report.Files, entry)
			continue
		}
		if file.Result == nil {
			continue
		}

		res := file.Result
		report.Totals.Files++
		report.Totals.Regions += len(res.Blocks)
		report.Totals.References += res.Refs.Len()
		report.Totals.Diagnostics += len(res.Diagnostics)
		if len(res.Diagnostics) > 0 {
			report.Totals.FilesWithDiagnostics++
		}

		entry.Regions = len(res.Blocks)
		entry.Diagnostics = len(res.Diagnostics)
		if header, ok := res.Header(); ok {
			entry.Header = &HeaderEntry{Title: header.Title, Date: header.Date}
		}

		for _, region := range res.Blocks {
			ctx.countRegion(displayPath, region.Category)
		}
		if opts.IncludeSpans {
			entry.Spans = SpanEntries(res.Document, res.Blocks)
		}
		if opts.IncludeReferences {
			entry.References = referenceEntries(res)
		}

		for _, diag := range res.Diagnostics {
			ctx.countDiagnostic(displayPath, string(diag.Kind))
			if opts.IncludeDiagnostics {
				_, column := res.Document.LineAt(diag.Offset)
				report.Diagnostics = append(report.Diagnostics, DiagnosticEntry{
					FilePath: displayPath,
					Kind:     string(diag.Kind),
					Message:  diag.Message,
					Line:     diag.Line,
					Column:   column,
					Offset:   diag.Offset,
				})
			}
		}

		report.Files = append(report.Files, entry)
	}

	report.ByCategory = ctx.buildByCategory(opts)
	report.ByKind = ctx.buildByKind(opts)

	return report
}

// SpanEntries converts span trees into their serialisable form.
func SpanEntries(doc *document.Document, spans []*span.Span) []SpanEntry {
	if len(spans) == 0 {
		return nil
	}

	entries := make([]SpanEntry, 0, len(spans))
	for _, node := range spans {
		line, column := doc.LineAt(node.Start)
		entry := SpanEntry{
			Category: node.Category.String(),
			Start:    node.Start,
			End:      node.End,
			Line:     line,
			Column:   column,
			Children: SpanEntries(doc, node.Children),
		}
		if attrs := node.Attrs; attrs != nil {
			entry.Level = attrs.Level
			entry.Number = attrs.Number
			entry.Anchor = attrs.Anchor
			entry.Language = attrs.Language
			entry.Guessed = attrs.Guessed
			entry.Label = attrs.Label
			if link := attrs.Link; link != nil {
				entry.Link = &LinkEntry{URL: link.URL, Title: link.Title, RefID: link.RefID, Resolved: link.Resolved}
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func referenceEntries(res *classify.Result) []ReferenceEntry {
	if res.Refs.Len() == 0 {
		return nil
	}
	entries := make([]ReferenceEntry, 0, res.Refs.Len())
	for _, ref := range res.Refs.References() {
		entries = append(entries, ReferenceEntry{ID: ref.ID, URL: ref.URL, Title: ref.Title, Line: ref.Line})
	}
	return entries
}

func sortBy[T any](items []T, opts Options, key func(T) (string, int)) {
	slices.SortFunc(items, func(left, right T) int {
		leftName, leftCount := key(left)
		rightName, rightCount := key(right)
		if opts.SortBy == SortByAlpha {
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(leftName, rightName)
		}
		result := cmp.Compare(leftCount, rightCount)
		if opts.SortDesc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(leftName, rightName)
		}
		return result
	})
}
