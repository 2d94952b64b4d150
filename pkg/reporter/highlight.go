package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/dllup/pkg/runner"
)

// HighlightReporter prints each source file painted with the category
// palette. Diagnostics are counted but not printed so that the output stays
// the source text.
type HighlightReporter struct {
	output
}

// NewHighlightReporter creates a new highlight reporter.
func NewHighlightReporter(opts Options) *HighlightReporter {
	return &HighlightReporter{output: newOutput(opts)}
}

// Report implements Reporter.
func (r *HighlightReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer r.flush(&err)

	if result == nil {
		return 0, nil
	}

	var total int
	multiple := len(result.Files) > 1
	for _, file := range result.Files {
		if file.Error != nil {
			r.fileError(file)
			continue
		}
		if file.Result == nil {
			continue
		}

		if multiple {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("==> "+r.opts.displayPath(file.Path)+" <=="))
		}
		fmt.Fprint(r.bw, r.styles.Highlight(file.Result.Document, file.Result.Blocks))
		total += len(file.Result.Diagnostics)
	}

	return total, nil
}
