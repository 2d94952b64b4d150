// Package chromalex provides sub-grammar classifiers backed by chroma lexers.
package chromalex

import (
	"errors"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/yaklabco/dllup/pkg/span"
)

// ErrUnknownLexer is returned when no chroma lexer matches a grammar name.
var ErrUnknownLexer = errors.New("unknown chroma lexer")

// Classifier classifies embedded code with a chroma lexer.
type Classifier struct {
	lexer chroma.Lexer
	name  string
}

// New resolves a lexer by name, alias or file extension. When dialect is set
// the combined "grammar+dialect" lexer is preferred (e.g. "html+django").
func New(grammarName, dialect string) (*Classifier, error) {
	var lexer chroma.Lexer
	if dialect != "" {
		lexer = lexers.Get(grammarName + "+" + dialect)
	}
	if lexer == nil {
		lexer = lexers.Get(grammarName)
	}
	if lexer == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLexer, grammarName)
	}

	return &Classifier{
		lexer: chroma.Coalesce(lexer),
		name:  lexer.Config().Name,
	}, nil
}

// Name returns the chroma lexer's display name.
func (c *Classifier) Name() string {
	return c.name
}

// Classify tokenises content and returns one Embedded span per meaningful
// token. Plain text and whitespace tokens produce no span.
func (c *Classifier) Classify(content []byte) ([]*span.Span, error) {
	if len(content) == 0 {
		return nil, nil
	}

	iterator, err := c.lexer.Tokenise(nil, string(content))
	if err != nil {
		return nil, fmt.Errorf("tokenise %s: %w", c.name, err)
	}

	var spans []*span.Span
	offset := 0
	for _, tok := range iterator.Tokens() {
		size := len(tok.Value)
		if size == 0 {
			continue
		}
		end := offset + size
		if end > len(content) {
			// Lexers may append a final newline.
			end = len(content)
		}
		if offset >= end || string(content[offset:end]) != tok.Value[:end-offset] {
			break
		}
		if tok.Type != chroma.None && tok.Type < chroma.Text {
			spans = append(spans, span.New(span.Embedded, offset, end).WithAttrs(&span.Attrs{
				Label: tok.Type.String(),
			}))
		}
		offset = end
	}

	return spans, nil
}

// Names lists the available lexer names.
func Names() []string {
	return lexers.Names(false)
}
