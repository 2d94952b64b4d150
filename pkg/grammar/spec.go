package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// ErrInvalidSpec is returned for malformed binding specs.
var ErrInvalidSpec = errors.New("invalid grammar spec")

// BindingSpec is a parsed configuration entry of the form
//
//	tag[=grammar][.dialect]
//
// "python" binds tag python to grammar python; "py=python" binds tag py to
// grammar python; "jsx=javascript.react" adds dialect react.
type BindingSpec struct {
	Tag     string
	Grammar string
	Dialect string
}

// String renders the spec in its configuration form.
func (s BindingSpec) String() string {
	var builder strings.Builder
	builder.WriteString(s.Tag)
	if s.Grammar != "" && s.Grammar != s.Tag {
		builder.WriteByte('=')
		builder.WriteString(s.Grammar)
	}
	if s.Dialect != "" {
		builder.WriteByte('.')
		builder.WriteString(s.Dialect)
	}
	return builder.String()
}

// ParseSpec parses one binding spec.
func ParseSpec(raw string) (BindingSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return BindingSpec{}, fmt.Errorf("%w: empty", ErrInvalidSpec)
	}
	if strings.ContainsAny(raw, " \t") {
		return BindingSpec{}, fmt.Errorf("%w: %q contains whitespace", ErrInvalidSpec, raw)
	}

	tag, target, hasTarget := strings.Cut(raw, "=")
	if !hasTarget {
		target = tag
	}

	grammar, dialect, _ := strings.Cut(target, ".")
	if !hasTarget {
		tag = grammar
	}
	if tag == "" || grammar == "" {
		return BindingSpec{}, fmt.Errorf("%w: %q", ErrInvalidSpec, raw)
	}

	return BindingSpec{Tag: tag, Grammar: grammar, Dialect: dialect}, nil
}

// ParseSpecs parses a list of binding specs, joining all errors.
func ParseSpecs(raw []string) ([]BindingSpec, error) {
	specs := make([]BindingSpec, 0, len(raw))
	var errs []error
	for _, entry := range raw {
		spec, err := ParseSpec(entry)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		specs = append(specs, spec)
	}
	return specs, errors.Join(errs...)
}

// Canonical resolves a language name or alias ("py", "golang", "sh") to the
// canonical linguist language name ("Python", "Go", "Shell").
func Canonical(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if lang, ok := enry.GetLanguageByAlias(name); ok {
		return lang, true
	}
	return "", false
}
