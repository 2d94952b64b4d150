package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/dllup/internal/logging"
	"github.com/yaklabco/dllup/pkg/classify"
	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/fsutil"
)

// Runner classifies discovered files with a shared classifier.
type Runner struct {
	// Classifier is safe for concurrent use once its registry is frozen.
	Classifier *classify.Classifier
}

// New creates a Runner around classifier.
func New(classifier *classify.Classifier) *Runner {
	return &Runner{Classifier: classifier}
}

// Run discovers files under opts.Paths and classifies them on a worker pool.
// Outcomes are returned in path order regardless of completion order. A
// cancelled context returns the partial result together with the error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Go(func() {
			r.worker(ctx, workCh, outCh)
		})
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

// ClassifyFile reads and classifies a single file.
func (r *Runner) ClassifyFile(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	logger := logging.ForDocument(ctx, path)

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		logger.Debug("read failed", logging.FieldError, err)
		outcome.Error = err
		return outcome
	}

	outcome.Info = info
	outcome.Result = r.Classifier.Classify(document.New(path, content))
	logger.Debug("classified",
		logging.FieldRegions, len(outcome.Result.Blocks),
		logging.FieldDiagnostics, len(outcome.Result.Diagnostics),
	)
	return outcome
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.ClassifyFile(ctx, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
