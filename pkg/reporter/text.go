package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/dllup/pkg/runner"
)

// TextReporter prints diagnostics grouped by file.
type TextReporter struct {
	output
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{output: newOutput(opts)}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer r.flush(&err)

	if r.empty(result) {
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if file.Error != nil {
			r.fileError(file)
			continue
		}
		if file.Result == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}

		path := r.opts.displayPath(file.Path)
		diagnostics := file.Result.Diagnostics
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diagnostics)))
		for _, diag := range diagnostics {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, diag, file.Result.Document, r.opts.ShowContext))
			total++
		}

		// Blank line between files
		fmt.Fprintln(r.bw)
	}

	r.summary(result)
	return total, nil
}
