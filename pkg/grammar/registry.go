// Package grammar provides the sub-grammar registry: the mapping from a
// fenced code block's language tag to an external classifier for that
// language's own text.
package grammar

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/yaklabco/dllup/pkg/span"
)

// ErrFrozen is returned when registering into a frozen registry.
var ErrFrozen = errors.New("grammar registry is frozen")

// Classifier classifies the text of an embedded language.
//
// Classify receives the verbatim inner text of a fenced block and returns
// spans whose offsets are relative to the start of content. Returned spans
// should use span.Embedded; the driver clamps anything that escapes content.
type Classifier interface {
	Classify(content []byte) ([]*span.Span, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(content []byte) ([]*span.Span, error)

// Classify implements Classifier.
func (f ClassifierFunc) Classify(content []byte) ([]*span.Span, error) {
	return f(content)
}

// Binding associates a language tag with a classifier.
type Binding struct {
	// Tag is the language tag as written after "lang" in a fence.
	Tag string

	// Dialect is an optional dialect suffix, passed through to the classifier
	// when it was constructed.
	Dialect string

	// Grammar names the grammar backing the classifier (e.g. a lexer name).
	Grammar string

	// Classifier does the work.
	Classifier Classifier
}

// Registry holds language bindings. Registration happens before
// classification starts; after Freeze the registry is read-only and may be
// shared across goroutines.
type Registry struct {
	mu       sync.RWMutex
	byTag    map[string]Binding
	frozen   bool
	warnings []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byTag: make(map[string]Binding),
	}
}

// Register binds tag to a classifier. If the tag is already bound the new
// binding replaces it.
func (r *Registry) Register(tag, dialect string, classifier Classifier) error {
	return r.RegisterBinding(Binding{Tag: tag, Dialect: dialect, Grammar: tag, Classifier: classifier})
}

// RegisterBinding adds a fully-specified binding. Last registration wins.
func (r *Registry) RegisterBinding(binding Binding) error {
	if binding.Tag == "" {
		return fmt.Errorf("register binding: %w: empty tag", ErrInvalidSpec)
	}
	if binding.Classifier == nil {
		return fmt.Errorf("register binding %q: nil classifier", binding.Tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("register binding %q: %w", binding.Tag, ErrFrozen)
	}
	if binding.Grammar == "" {
		binding.Grammar = binding.Tag
	}
	r.byTag[binding.Tag] = binding
	return nil
}

// Resolve looks up the binding for tag. The lookup is exact and case-sensitive.
func (r *Registry) Resolve(tag string) (Binding, bool) {
	if r == nil {
		return Binding{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	binding, ok := r.byTag[tag]
	return binding, ok
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
	return r
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Bindings returns all bindings sorted by tag.
func (r *Registry) Bindings() []Binding {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Binding, 0, len(r.byTag))
	for _, binding := range r.byTag {
		result = append(result, binding)
	}

	slices.SortFunc(result, func(a, b Binding) int {
		return cmp.Compare(a.Tag, b.Tag)
	})

	return result
}

// Tags returns all bound tags in sorted order.
func (r *Registry) Tags() []string {
	bindings := r.Bindings()
	tags := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		tags = append(tags, binding.Tag)
	}
	return tags
}

// AddWarning records a non-fatal configuration problem.
func (r *Registry) AddWarning(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// Warnings returns the non-fatal problems recorded while building the registry.
func (r *Registry) Warnings() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.warnings)
}
