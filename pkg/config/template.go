package config

import (
	"bytes"
	"fmt"
	"strings"
)

// Template file formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every default grammar binding instead of a commented example.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string

	// Grammars are the binding specs written by a full template.
	Grammars []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML:
		return generateYAMLTemplate(opts), nil
	case TemplateTOML:
		return generateTOMLTemplate(opts), nil
	default:
		return nil, fmt.Errorf("unknown template format %q", opts.Format)
	}
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Which definition wins when a reference id is declared twice: last or first
duplicate_refs: last

# Guess the language of fences without a "lang" line
guess_untagged: false

# Compute slug anchors for headings
heading_anchors: true

# Styled output: auto, always or never
color: auto

# File extensions treated as dllup
extensions:
  - ".dllu"
  - ".dllup"

# File patterns to ignore (glob patterns)
# ignore:
#   - "drafts/**"
`)

	buf.WriteString("\n# Sub-grammar bindings: tag[=grammar][.dialect]\n")
	if opts.Full && len(opts.Grammars) > 0 {
		buf.WriteString("grammars:\n")
		for _, spec := range opts.Grammars {
			fmt.Fprintf(&buf, "  - %q\n", spec)
		}
	} else {
		buf.WriteString("# grammars:\n#   - \"go\"\n#   - \"md=markdown.gfm\"\n#   - \"tmpl=go.html\"\n")
	}

	return buf.Bytes()
}

func generateTOMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Which definition wins when a reference id is declared twice: last or first
duplicate_refs = "last"

# Guess the language of fences without a "lang" line
guess_untagged = false

# Compute slug anchors for headings
heading_anchors = true

# Styled output: auto, always or never
color = "auto"

# File extensions treated as dllup
extensions = [".dllu", ".dllup"]

# File patterns to ignore (glob patterns)
# ignore = ["drafts/**"]
`)

	buf.WriteString("\n# Sub-grammar bindings: tag[=grammar][.dialect]\n")
	if opts.Full && len(opts.Grammars) > 0 {
		quoted := make([]string, 0, len(opts.Grammars))
		for _, spec := range opts.Grammars {
			quoted = append(quoted, fmt.Sprintf("%q", spec))
		}
		fmt.Fprintf(&buf, "grammars = [\n  %s,\n]\n", strings.Join(quoted, ",\n  "))
	} else {
		buf.WriteString("# grammars = [\"go\", \"md=markdown.gfm\", \"tmpl=go.html\"]\n")
	}

	return buf.Bytes()
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# dllup configuration
# See: https://github.com/yaklabco/dllup`
}
