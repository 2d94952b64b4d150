// Package scan implements the dllup block and inline scanners.
//
// The block scanner walks a document line by line, evaluating the block rules
// in a fixed priority order (first match wins) and producing one Block Region
// per contiguous block. Each region's inner text is handed to the inline
// scanner or, for fenced code, to the sub-grammar registered for its tag.
package scan

import (
	"fmt"
	"iter"
	"maps"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/grammar"
	"github.com/yaklabco/dllup/pkg/refs"
	"github.com/yaklabco/dllup/pkg/span"
)

// DiagnosticKind names a degraded, non-fatal outcome.
type DiagnosticKind string

// Diagnostic kinds.
const (
	UnterminatedFence   DiagnosticKind = "unterminated-fence"
	UnterminatedRaw     DiagnosticKind = "unterminated-raw"
	UnknownLanguage     DiagnosticKind = "unknown-language"
	DuplicateReference  DiagnosticKind = "duplicate-reference"
	UnresolvedReference DiagnosticKind = "unresolved-reference"
	SubgrammarFailed    DiagnosticKind = "subgrammar-failed"
)

// Diagnostic reports a recoverable condition met while scanning.
type Diagnostic struct {
	Kind    DiagnosticKind
	Line    int
	Offset  int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d: %s: %s", d.Line, d.Kind, d.Message)
}

// Options tune the block scanner.
type Options struct {
	// GuessUntagged infers a language for fences without a "lang" line.
	GuessUntagged bool

	// HeadingAnchors computes slug anchors for headings.
	HeadingAnchors bool
}

// State is the scanner cursor for one document. A State is owned by a single
// goroutine; only the Registry may be shared.
type State struct {
	Doc      *document.Document
	Registry *grammar.Registry
	Refs     *refs.Table
	Anchors  *Anchors
	Options  Options

	// Report receives diagnostics; nil discards them.
	Report func(Diagnostic)

	// Line is the 0-based index of the next line to scan.
	Line int
}

// NewState creates a cursor positioned at the start of doc.
func NewState(doc *document.Document, registry *grammar.Registry, table *refs.Table, opts Options) *State {
	if table == nil {
		table = refs.NewTable(refs.LastWins)
	}
	return &State{
		Doc:      doc,
		Registry: registry,
		Refs:     table,
		Anchors:  NewAnchors(),
		Options:  opts,
	}
}

// Blocks returns a lazy sequence of block regions from the cursor onwards.
// Consumers may stop early; the cursor is left after the last yielded block.
func Blocks(state *State) iter.Seq[*span.Span] {
	return func(yield func(*span.Span) bool) {
		for {
			region, ok := state.Next()
			if !ok || !yield(region) {
				return
			}
		}
	}
}

// SkipBlank advances the cursor past blank lines and reports whether a block
// remains.
func (s *State) SkipBlank() bool {
	for s.Line < s.Doc.LineCount() && classifyLine(s.lineText(s.Line)) == kindBlank {
		s.Line++
	}
	return s.Line < s.Doc.LineCount()
}

// Next scans the next block region.
func (s *State) Next() (*span.Span, bool) {
	if !s.SkipBlank() {
		return nil, false
	}

	switch classifyLine(s.lineText(s.Line)) {
	case kindHeading:
		return s.scanHeading(), true
	case kindFence:
		return s.scanFence(), true
	case kindQuote:
		return s.scanQuote(), true
	case kindMath:
		return s.scanMath(), true
	case kindPicture:
		return s.scanPicture(), true
	case kindRaw:
		return s.scanRaw(), true
	case kindDivider:
		return s.scanSingle(span.SectionDivider), true
	case kindButton:
		return s.scanButton(), true
	case kindTableSeparator, kindTableRow:
		return s.scanTable(), true
	case kindRule:
		return s.scanSingle(span.HorizontalRule), true
	case kindBullet, kindOrdered:
		return s.scanListItem(), true
	default:
		return s.scanParagraph(), true
	}
}

func (s *State) report(kind DiagnosticKind, offset int, format string, args ...any) {
	if s.Report == nil {
		return
	}
	line, _ := s.Doc.LineAt(offset)
	s.Report(Diagnostic{
		Kind:    kind,
		Line:    line,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	})
}

func (s *State) lineText(idx int) []byte {
	line := s.Doc.Lines[idx]
	return s.Doc.Content[line.Start:line.NewlineStart]
}

// OrdinalKind names a numbered block kind.
type OrdinalKind int

// Numbered block kinds.
const (
	OrdinalSection OrdinalKind = iota
	OrdinalFigure
	OrdinalEquation
	ordinalKinds
)

// Anchors hands out unique heading slugs and the running numbers of
// sections, figures and equations.
type Anchors struct {
	counts   map[string]int
	ordinals [ordinalKinds]int
}

// NewAnchors creates an empty anchor counter.
func NewAnchors() *Anchors {
	return &Anchors{counts: make(map[string]int)}
}

// Next returns the anchor for a heading text: the slug on first use, then
// slug-2, slug-3 and so on.
func (a *Anchors) Next(text string) string {
	base := Slug(text)
	a.counts[base]++
	if count := a.counts[base]; count > 1 {
		return base + "-" + strconv.Itoa(count)
	}
	return base
}

// NextOrdinal returns the 1-based number of the next block of kind.
func (a *Anchors) NextOrdinal(kind OrdinalKind) int {
	a.ordinals[kind]++
	return a.ordinals[kind]
}

// Clone returns an independent copy.
func (a *Anchors) Clone() *Anchors {
	return &Anchors{counts: maps.Clone(a.counts), ordinals: a.ordinals}
}

// Equal reports whether both counters hold the same counts.
func (a *Anchors) Equal(other *Anchors) bool {
	return maps.Equal(a.counts, other.counts) && a.ordinals == other.ordinals
}

// Slug lowercases text, keeps letters, digits and spaces, and turns spaces
// into hyphens.
func Slug(text string) string {
	lower := cases.Lower(language.Und).String(text)
	var builder strings.Builder
	for _, char := range lower {
		switch {
		case char == ' ':
			builder.WriteByte('-')
		case unicode.IsLetter(char), unicode.IsDigit(char):
			builder.WriteRune(char)
		}
	}
	return builder.String()
}
