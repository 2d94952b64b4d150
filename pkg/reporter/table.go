package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/dllup/internal/ui/pretty"
	"github.com/yaklabco/dllup/pkg/runner"
)

// TableReporter prints one table of top-level regions per file.
type TableReporter struct {
	output
	formatter *pretty.TableFormatter
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	out := newOutput(opts)
	return &TableReporter{
		output:    out,
		formatter: pretty.NewTableFormatter(out.styles, pretty.TerminalWidth(opts.Writer)),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

		res := file.Result
		path := r.opts.displayPath(file.Path)
		fmt.Fprintln(r.bw, r.styles.Bold.Render(path))
		fmt.Fprint(r.bw, r.formatter.FormatRegions(res.Document, res.Blocks))
		if r.opts.ShowReferences && res.Refs.Len() > 0 {
			fmt.Fprint(r.bw, r.formatter.FormatReferences(res.Refs))
		}
		for _, diag := range res.Diagnostics {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, diag, res.Document, false))
			total++
		}
		fmt.Fprintln(r.bw)
	}

	r.summary(result)
	return total, nil
}
