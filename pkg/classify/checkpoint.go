package classify

import (
	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/refs"
	"github.com/yaklabco/dllup/pkg/scan"
)

// Checkpoint is the scanner state at a block start. Resuming from a
// checkpoint yields exactly the regions a full scan produces from that block
// onwards. The zero Checkpoint is the start of the document.
type Checkpoint struct {
	// Line is the 0-based index of the block's first line.
	Line int

	// Offset is the byte offset of that line.
	Offset int

	refs    *refs.Table
	anchors *scan.Anchors
}

func checkpointAt(state *scan.State) Checkpoint {
	return Checkpoint{
		Line:    state.Line,
		Offset:  state.Doc.Lines[state.Line].Start,
		refs:    state.Refs.Clone(),
		anchors: state.Anchors.Clone(),
	}
}

// References returns a copy of the reference definitions seen before the
// checkpoint.
func (cp Checkpoint) References() []*refs.Reference {
	if cp.refs == nil {
		return nil
	}
	return cp.refs.References()
}

// Equal reports whether two checkpoints hold the same position and state.
func (cp Checkpoint) Equal(other Checkpoint) bool {
	return cp.Line == other.Line &&
		cp.Offset == other.Offset &&
		cp.refsOr(refs.LastWins).Equal(other.refsOr(refs.LastWins)) &&
		cp.anchorsOrEmpty().Equal(other.anchorsOrEmpty())
}

func (cp Checkpoint) anchorsOrEmpty() *scan.Anchors {
	if cp.anchors == nil {
		return scan.NewAnchors()
	}
	return cp.anchors
}

func (cp Checkpoint) refsOr(policy refs.Policy) *refs.Table {
	if cp.refs == nil {
		return refs.NewTable(policy)
	}
	return cp.refs.Clone()
}

// SafeCheckpoint returns the latest checkpoint strictly before line (0-based).
// That is the start of the block enclosing or preceding line, however many
// lines a fence, raw block or table spans. Without one it returns the zero
// Checkpoint.
func (r *Result) SafeCheckpoint(line int) Checkpoint {
	var safe Checkpoint
	for _, cp := range r.Checkpoints {
		if cp.Line >= line {
			break
		}
		safe = cp
	}
	return safe
}

// Reclassify classifies doc, an edited version of prev.Document, rescanning
// only from the safe checkpoint before the first changed line. Regions before
// that checkpoint are reused. The result equals Classify(doc).
func (c *Classifier) Reclassify(prev *Result, doc *document.Document) *Result {
	if prev == nil || prev.Document == nil {
		return c.Classify(doc)
	}

	first := prev.Document.FirstDifference(doc)
	if first < 0 {
		first = doc.LineCount()
	}
	cp := prev.SafeCheckpoint(first)

	result := &Result{Document: doc}
	for _, region := range prev.Blocks {
		if region.Start >= cp.Offset {
			break
		}
		result.Blocks = append(result.Blocks, region.Clone())
	}
	for _, kept := range prev.Checkpoints {
		if kept.Line >= cp.Line {
			break
		}
		result.Checkpoints = append(result.Checkpoints, kept)
	}
	for _, d := range prev.Diagnostics {
		if d.Kind != scan.UnresolvedReference && d.Offset < cp.Offset {
			result.Diagnostics = append(result.Diagnostics, d)
		}
	}

	c.logger.Debug("reclassifying",
		"path", doc.Path,
		"first_changed_line", first+1,
		"restart_line", cp.Line+1,
		"reused_blocks", len(result.Blocks),
	)

	c.scan(c.newState(doc, cp), result)
	c.finish(result)
	return result
}
