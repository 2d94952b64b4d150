package classify

import (
	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/grammar"
	"github.com/yaklabco/dllup/pkg/grammar/builtin"
	"github.com/yaklabco/dllup/pkg/span"
)

// selfGrammar classifies dllup embedded in a fence with a fresh cursor and
// reference table.
type selfGrammar struct {
	classifier *Classifier
}

// SelfGrammar returns a sub-grammar that classifies embedded dllup with c.
// Registering it in c's own registry before freezing enables nesting.
func SelfGrammar(c *Classifier) grammar.Classifier {
	return &selfGrammar{classifier: c}
}

func (g *selfGrammar) Classify(content []byte) ([]*span.Span, error) {
	if g.classifier == nil || len(content) == 0 {
		return nil, nil
	}
	doc := &document.Document{Content: content, Lines: document.BuildLines(content)}
	return g.classifier.Classify(doc).Blocks, nil
}

// NewWithGrammars builds a Classifier over the builtin registry for specs,
// with the dllup grammar bound to the Classifier itself. Warnings about
// specs that could not be bound are available from the registry.
func NewWithGrammars(specs []string, opts ...Option) *Classifier {
	self := &selfGrammar{}
	registry := builtin.NewRegistry(specs, builtin.Options{Self: self})
	c := New(registry, opts...)
	self.classifier = c
	return c
}
