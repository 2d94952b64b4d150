package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/dllup/pkg/runner"
)

// TreeReporter prints each file's span tree followed by its diagnostics.
type TreeReporter struct {
	output
}

// NewTreeReporter creates a new tree reporter.
func NewTreeReporter(opts Options) *TreeReporter {
	return &TreeReporter{output: newOutput(opts)}
}

// Report implements Reporter.
func (r *TreeReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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
		if file.Result == nil {
			continue
		}

		path := r.opts.displayPath(file.Path)
		res := file.Result
		fmt.Fprintln(r.bw, r.styles.Bold.Render(path))
		fmt.Fprint(r.bw, r.styles.FormatTree(res.Document, res.Blocks))
		for _, diag := range res.Diagnostics {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, diag, res.Document, r.opts.ShowContext))
			total++
		}
		fmt.Fprintln(r.bw)
	}

	r.summary(result)
	return total, nil
}
