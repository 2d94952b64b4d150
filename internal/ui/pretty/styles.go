// Package pretty provides Lipgloss-based styled output utilities.
//
// The category palette here is the presentation layer for classified spans:
// the classifier only tags byte ranges, and this package decides how each
// category looks on a terminal.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yaklabco/dllup/pkg/span"
)

// DefaultTermWidth is used when the terminal width cannot be determined.
const DefaultTermWidth = 100

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Diagnostic components
	Warning    lipgloss.Style
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Kind       lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table and tree styles
	TableHeader lipgloss.Style
	TableBorder lipgloss.Style
	TreeBranch  lipgloss.Style
	Range       lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style

	categories map[span.Category]lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// Category returns the style for spans of category c. Categories without an
// entry render unstyled.
func (s *Styles) Category(c span.Category) lipgloss.Style {
	if style, ok := s.categories[c]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

func newColorStyles() *Styles {
	color := func(code string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}

	heading := color("13").Bold(true)
	marker := color("8")
	code := color("10")
	link := color("12").Underline(true)

	return &Styles{
		Warning:    color("11").Bold(true),
		FilePath:   lipgloss.NewStyle().Bold(true),
		Location:   color("8"),
		Kind:       color("8"),
		Message:    lipgloss.NewStyle(),
		SourceLine: color("7"),
		Caret:      color("11"),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      color("10").Bold(true),
		Failure:      color("9").Bold(true),

		TableHeader: color("7").Bold(true),
		TableBorder: color("8"),
		TreeBranch:  color("8"),
		Range:       color("6"),

		Dim:  color("8"),
		Bold: lipgloss.NewStyle().Bold(true),

		categories: map[span.Category]lipgloss.Style{
			span.Heading1:       heading,
			span.Heading2:       heading,
			span.Heading3:       heading,
			span.Heading4:       color("5").Bold(true),
			span.Heading5:       color("5").Bold(true),
			span.Heading6:       color("5").Bold(true),
			span.HeadingMarker:  marker,
			span.CodeBlock:      code,
			span.FenceDelimiter: marker,
			span.CodeLanguage:   color("14").Italic(true),
			span.CodeContent:    code,
			span.CodeSpan:       code,
			span.Quote:          color("7").Italic(true),
			span.QuoteMarker:    marker,
			span.DisplayMath:    color("6"),
			span.MathMarker:     marker,
			span.MathContent:    color("6"),
			span.InlineMath:     color("6"),
			span.Picture:        color("3"),
			span.PicKeyword:     marker,
			span.PicURL:         link,
			span.PicAlt:         color("3").Italic(true),
			span.PicCaption:     color("3"),
			span.RawBlock:       color("1"),
			span.RawDelimiter:   marker,
			span.RawContent:     color("1"),
			span.SectionDivider: color("13"),
			span.BigButton:      color("11").Bold(true),
			span.ButtonMarker:   marker,
			span.ButtonURL:      link,
			span.TableDelimiter: marker,
			span.TableSeparator: marker,
			span.ListMarker:     color("11"),
			span.HorizontalRule: marker,
			span.Escape:         marker,
			span.Bold:           lipgloss.NewStyle().Bold(true),
			span.Italic:         lipgloss.NewStyle().Italic(true),
			span.LinkText:       link,
			span.ImageText:      link,
			span.LinkURL:        color("4"),
			span.LinkTitle:      color("4").Italic(true),
			span.LinkRefID:      color("4"),
			span.AutoLink:       link,
			span.Citation:       color("14"),
			span.CrossReference: color("14"),
			span.Entity:         color("3"),
			span.RawHTML:        color("1"),
			span.Embedded:       code,

			span.ReferenceDefinition: marker,
		},
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Warning:      plain,
		FilePath:     plain,
		Location:     plain,
		Kind:         plain,
		Message:      plain,
		SourceLine:   plain,
		Caret:        plain,
		SummaryTitle: plain,
		SummaryValue: plain,
		Success:      plain,
		Failure:      plain,
		TableHeader:  plain,
		TableBorder:  plain,
		TreeBranch:   plain,
		Range:        plain,
		Dim:          plain,
		Bold:         plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the width of the terminal behind writer, or
// DefaultTermWidth when writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return DefaultTermWidth
}
