package scan

import (
	"fmt"
	"sort"

	"github.com/yaklabco/dllup/pkg/grammar"
	"github.com/yaklabco/dllup/pkg/span"
)

// embed hands fenced code to the sub-grammar bound to its language and
// attaches the resulting spans under content.
func (s *State) embed(content *span.Span, attrs *span.Attrs) {
	text := content.Text(s.Doc.Content)

	tag := attrs.Language
	if tag == "" && s.Options.GuessUntagged {
		if guess := grammar.Guess(text); guess != "" {
			if _, ok := s.Registry.Resolve(guess); ok {
				attrs.Language = guess
				attrs.Guessed = true
				tag = guess
			}
		}
	}
	if tag == "" {
		return
	}

	binding, ok := s.Registry.Resolve(tag)
	if !ok {
		s.report(UnknownLanguage, content.Start, "no grammar registered for language %q", tag)
		return
	}

	spans, err := classifySafely(binding.Classifier, text)
	if err != nil {
		s.report(SubgrammarFailed, content.Start, "grammar %q: %v", binding.Grammar, err)
		return
	}

	for _, child := range Sanitize(spans, 0, len(text)) {
		child.Shift(content.Start)
		content.Append(child)
	}
}

func classifySafely(classifier grammar.Classifier, text []byte) (spans []*span.Span, err error) {
	defer func() {
		if r := recover(); r != nil {
			spans, err = nil, fmt.Errorf("classifier panic: %v", r)
		}
	}()
	return classifier.Classify(text)
}

// Sanitize orders spans by start and drops every span that is empty, falls
// outside [lo, hi) or overlaps an earlier sibling, recursively. Parent
// pointers of the returned spans are cleared.
func Sanitize(spans []*span.Span, lo, hi int) []*span.Span {
	sorted := make([]*span.Span, 0, len(spans))
	for _, candidate := range spans {
		if candidate != nil {
			sorted = append(sorted, candidate)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	out := sorted[:0]
	prevEnd := lo
	for _, candidate := range sorted {
		if candidate.Start < prevEnd || candidate.End > hi || candidate.Start >= candidate.End {
			continue
		}
		candidate.Parent = nil
		children := Sanitize(candidate.Children, candidate.Start, candidate.End)
		candidate.Children = nil
		candidate.Append(children...)
		out = append(out, candidate)
		prevEnd = candidate.End
	}
	return out
}
