// Package builtin assembles the default sub-grammar registry from binding
// specs such as "go", "md=markdown.gfm" or "tmpl=go.html".
package builtin

import (
	"errors"

	"github.com/yaklabco/dllup/pkg/grammar"
	"github.com/yaklabco/dllup/pkg/grammar/chromalex"
	"github.com/yaklabco/dllup/pkg/grammar/goldmark"
)

// Grammar names with a dedicated classifier.
const (
	GrammarDllup    = "dllup"
	GrammarMarkdown = "markdown"
	GrammarMd       = "md"
)

var errNoSelfGrammar = errors.New("dllup self-grammar is not available")

// DefaultSpecs is the binding set used when no grammars are configured.
var DefaultSpecs = []string{
	"dllup",
	"markdown.gfm",
	"md=markdown.gfm",
	"bash", "sh=bash", "c", "cpp", "css", "go", "haskell", "html", "java",
	"javascript", "js=javascript", "json", "lua", "python", "py=python",
	"ruby", "rust", "sql", "tex", "latex=tex", "toml", "typescript", "yaml",
}

// Options configures NewRegistry.
type Options struct {
	// Self classifies embedded dllup. Specs naming the dllup grammar are
	// skipped with a warning when nil.
	Self grammar.Classifier
}

// NewRegistry binds every spec and returns the frozen registry. Specs that
// cannot be parsed or whose grammar is unknown are recorded as registry
// warnings and skipped. An empty spec list binds DefaultSpecs.
func NewRegistry(specs []string, opts Options) *grammar.Registry {
	if len(specs) == 0 {
		specs = DefaultSpecs
	}

	registry := grammar.NewRegistry()
	for _, raw := range specs {
		spec, err := grammar.ParseSpec(raw)
		if err != nil {
			registry.AddWarning("%v", err)
			continue
		}

		classifier, err := resolve(spec, opts)
		if err != nil {
			registry.AddWarning("grammar %q for tag %q: %v", spec.Grammar, spec.Tag, err)
			continue
		}

		if err := registry.RegisterBinding(grammar.Binding{
			Tag:        spec.Tag,
			Dialect:    spec.Dialect,
			Grammar:    spec.Grammar,
			Classifier: classifier,
		}); err != nil {
			registry.AddWarning("%v", err)
		}
	}

	return registry.Freeze()
}

func resolve(spec grammar.BindingSpec, opts Options) (grammar.Classifier, error) {
	switch spec.Grammar {
	case GrammarDllup:
		if opts.Self == nil {
			return nil, errNoSelfGrammar
		}
		return opts.Self, nil
	case GrammarMarkdown, GrammarMd:
		return goldmark.New(spec.Dialect), nil
	}

	classifier, err := chromalex.New(spec.Grammar, spec.Dialect)
	if err == nil {
		return classifier, nil
	}
	if canonical, ok := grammar.Canonical(spec.Grammar); ok {
		if fallback, fallbackErr := chromalex.New(canonical, spec.Dialect); fallbackErr == nil {
			return fallback, nil
		}
	}
	return nil, err
}
