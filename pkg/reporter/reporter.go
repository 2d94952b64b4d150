// Package reporter writes classification results in the supported output
// formats.
package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/dllup/internal/ui/pretty"
	"github.com/yaklabco/dllup/pkg/analysis"
	"github.com/yaklabco/dllup/pkg/runner"
)

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes classification results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of diagnostics reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Diagnostics, nil
}

// newRendererFacade creates a facade wrapping a Renderer. Span trees are only
// analysed when the renderer prints them.
func newRendererFacade(renderer Renderer, opts Options, withSpans bool) *reporterFacade {
	analysisOpts := analysis.DefaultOptions()
	analysisOpts.IncludeSpans = withSpans
	analysisOpts.IncludeReferences = withSpans
	analysisOpts.WorkingDir = opts.WorkingDir
	return &reporterFacade{renderer: renderer, analysisOpts: analysisOpts}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	// Default writer to stdout if not specified
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTree:
		return NewTreeReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatHighlight:
		return NewHighlightReporter(opts), nil
	case FormatJSON:
		return newRendererFacade(NewJSONRenderer(opts), opts, true), nil
	case FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts, false), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// output is the state shared by the streaming reporters.
type output struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

func newOutput(opts Options) output {
	return output{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// flush writes buffered output, keeping the first error.
func (o output) flush(err *error) {
	if flushErr := o.bw.Flush(); *err == nil {
		*err = flushErr
	}
}

// fileError prints a file that could not be classified.
func (o output) fileError(file runner.FileOutcome) {
	fmt.Fprintf(o.bw, "%s: %s\n",
		o.styles.FilePath.Render(o.opts.displayPath(file.Path)),
		o.styles.Failure.Render(fmt.Sprintf("error: %v", file.Error)),
	)
}

// empty reports whether there is nothing to print, printing a notice if so.
func (o output) empty(result *runner.Result) bool {
	if result != nil && len(result.Files) > 0 {
		return false
	}
	if o.opts.ShowSummary {
		fmt.Fprintln(o.bw, o.styles.Success.Render("No files to classify."))
	}
	return true
}

// summary prints the one-line run summary when enabled.
func (o output) summary(result *runner.Result) {
	if o.opts.ShowSummary {
		fmt.Fprint(o.bw, o.styles.FormatSummaryOneLine(result.Stats))
	}
}
