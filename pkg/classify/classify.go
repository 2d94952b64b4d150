// Package classify drives the dllup scanners over whole documents.
//
// A Classifier is immutable once built and may be shared between goroutines;
// every call creates its own scanning cursor. Classification never fails:
// malformed input degrades to plain regions and the problems found are
// reported as diagnostics on the Result.
package classify

import (
	"io"
	"iter"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/grammar"
	"github.com/yaklabco/dllup/pkg/refs"
	"github.com/yaklabco/dllup/pkg/scan"
	"github.com/yaklabco/dllup/pkg/span"
)

// Classifier classifies dllup documents into block regions.
type Classifier struct {
	registry *grammar.Registry
	logger   *log.Logger
	policy   refs.Policy
	scanOpts scan.Options
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger used for debug output about degraded input.
func WithLogger(logger *log.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDuplicatePolicy selects which definition wins when a reference id is
// declared more than once.
func WithDuplicatePolicy(policy refs.Policy) Option {
	return func(c *Classifier) {
		c.policy = policy
	}
}

// WithGuessUntagged enables language guessing for fences without a tag.
func WithGuessUntagged(enabled bool) Option {
	return func(c *Classifier) {
		c.scanOpts.GuessUntagged = enabled
	}
}

// WithHeadingAnchors enables slug anchors on heading regions.
func WithHeadingAnchors(enabled bool) Option {
	return func(c *Classifier) {
		c.scanOpts.HeadingAnchors = enabled
	}
}

// New creates a Classifier. A nil registry disables sub-grammars.
func New(registry *grammar.Registry, opts ...Option) *Classifier {
	c := &Classifier{
		registry: registry,
		logger:   log.New(io.Discard),
		policy:   refs.LastWins,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the sub-grammar registry.
func (c *Classifier) Registry() *grammar.Registry {
	return c.registry
}

// Classify scans the whole document. Reference links are resolved against the
// complete reference table, so a link may point at a definition further down.
func (c *Classifier) Classify(doc *document.Document) *Result {
	return c.ClassifyFrom(doc, Checkpoint{})
}

// Blocks lazily yields block regions. Consumers may stop early. Reference
// links only see definitions that precede them, and diagnostics go to the
// logger.
func (c *Classifier) Blocks(doc *document.Document) iter.Seq[*span.Span] {
	return c.Resume(doc, Checkpoint{})
}

// Resume lazily yields block regions starting at a checkpoint.
func (c *Classifier) Resume(doc *document.Document, cp Checkpoint) iter.Seq[*span.Span] {
	return func(yield func(*span.Span) bool) {
		state := c.newState(doc, cp)
		state.Report = c.logDiagnostic(doc)
		for region := range scan.Blocks(state) {
			if !yield(region) {
				return
			}
		}
	}
}

// ClassifyFrom scans from a checkpoint to the end of the document. The
// result holds only the regions, checkpoints and diagnostics at or after cp.
func (c *Classifier) ClassifyFrom(doc *document.Document, cp Checkpoint) *Result {
	result := &Result{Document: doc}
	state := c.newState(doc, cp)
	c.scan(state, result)
	c.finish(result)
	return result
}

func (c *Classifier) newState(doc *document.Document, cp Checkpoint) *scan.State {
	state := scan.NewState(doc, c.registry, cp.refsOr(c.policy), c.scanOpts)
	if cp.anchors != nil {
		state.Anchors = cp.anchors.Clone()
	}
	state.Line = min(cp.Line, doc.LineCount())
	return state
}

// scan runs the cursor to the end of the document, recording a checkpoint at
// every block start.
func (c *Classifier) scan(state *scan.State, result *Result) {
	state.Report = func(d scan.Diagnostic) {
		result.Diagnostics = append(result.Diagnostics, d)
	}

	for state.SkipBlank() {
		result.Checkpoints = append(result.Checkpoints, checkpointAt(state))
		region, ok := state.Next()
		if !ok {
			break
		}
		result.Blocks = append(result.Blocks, region)
	}
	result.Refs = state.Refs
}

// finish resolves reference links against the final table and logs a summary.
func (c *Classifier) finish(result *Result) {
	result.Diagnostics = append(result.Diagnostics, resolveLinks(result)...)

	for _, d := range result.Diagnostics {
		c.logger.Debug("degraded input", "path", result.Document.Path, "line", d.Line, "kind", d.Kind, "message", d.Message)
	}
	c.logger.Debug("classified document",
		"path", result.Document.Path,
		"blocks", len(result.Blocks),
		"references", result.Refs.Len(),
		"diagnostics", len(result.Diagnostics),
	)
}

func (c *Classifier) logDiagnostic(doc *document.Document) func(scan.Diagnostic) {
	return func(d scan.Diagnostic) {
		c.logger.Debug("degraded input", "path", doc.Path, "line", d.Line, "kind", d.Kind, "message", d.Message)
	}
}
