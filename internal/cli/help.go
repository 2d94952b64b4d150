package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/dllup/internal/ui/pretty"
	"github.com/yaklabco/dllup/pkg/span"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles borrows its colours from the category palette so that help
// text looks like classified dllup: headings for sections, links for
// subcommands and code spans for flags.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	palette := pretty.NewStyles(colorEnabled)
	return &HelpStyles{
		Command:     palette.Bold,
		Heading:     palette.Category(span.Heading2),
		Subcommand:  palette.Category(span.LinkText),
		Flag:        palette.Category(span.CodeSpan),
		Description: lipgloss.NewStyle(),
		Example:     palette.Dim,
		Dim:         palette.Dim,
	}
}

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

// templateFuncs returns template functions for styled help rendering.
func (h *HelpFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":            h.styles.Command.Render,
		"styleHeading":            h.styles.Heading.Render,
		"styleSubcommand":         h.styles.Subcommand.Render,
		"styleFlag":               h.styles.Flag.Render,
		"styleDescription":        h.styles.Description.Render,
		"styleExample":            h.styles.Example.Render,
		"styleDim":                h.styles.Dim.Render,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// usageTemplate returns the styled usage template.
func (h *HelpFormatter) usageTemplate() string {
	return `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ styleHeading "Aliases:" }}
  {{ styleDim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExample .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ styleDescription .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlagsUsage .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`
}

// helpTemplate returns the styled help template.
func (h *HelpFormatter) helpTemplate() string {
	return `{{if or .Runnable .HasSubCommands}}{{ styleCommand .CommandPath }}{{if .Version}} {{ styleDim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + h.usageTemplate()
}

// flagColumn is the left column of one flag usage line.
type flagColumn struct {
	plain  string
	styled string
	usage  string
}

// styleFlagsUsage renders the visible flags of a set as aligned, styled
// usage lines.
func (h *HelpFormatter) styleFlagsUsage(flags *pflag.FlagSet) string {
	if flags == nil {
		return ""
	}

	var columns []flagColumn
	width := 0
	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		column := h.flagColumn(flag)
		width = max(width, len(column.plain))
		columns = append(columns, column)
	})

	lines := make([]string, 0, len(columns))
	for _, column := range columns {
		padding := strings.Repeat(" ", width-len(column.plain))
		lines = append(lines, "  "+column.styled+padding+"   "+h.styles.Description.Render(column.usage))
	}
	return strings.Join(lines, "\n")
}

// flagColumn builds "-f, --name type" for a flag, plain and styled.
func (h *HelpFormatter) flagColumn(flag *pflag.Flag) flagColumn {
	var plain, styled strings.Builder

	if flag.Shorthand != "" {
		short := "-" + flag.Shorthand
		plain.WriteString(short + ", ")
		styled.WriteString(h.styles.Flag.Render(short) + ", ")
	} else {
		plain.WriteString("    ")
		styled.WriteString("    ")
	}

	long := "--" + flag.Name
	plain.WriteString(long)
	styled.WriteString(h.styles.Flag.Render(long))

	varName, usage := pflag.UnquoteUsage(flag)
	if varName != "" {
		plain.WriteString(" " + varName)
		styled.WriteString(" " + h.styles.Dim.Render(varName))
	}

	if flag.DefValue != "" && flag.DefValue != "false" && flag.DefValue != "0" && flag.DefValue != "[]" {
		usage += h.styles.Dim.Render(fmt.Sprintf(" (default %q)", flag.DefValue))
	}

	return flagColumn{plain: plain.String(), styled: styled.String(), usage: usage}
}

// ApplyToCommand applies styled help templates to a Cobra command and all subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	// Create template funcs with flag styling
	funcs := h.templateFuncs()
	funcs["styleFlagsUsage"] = h.styleFlagsUsage
	funcs["join"] = strings.Join

	// Set the custom templates
	cmd.SetUsageTemplate(h.usageTemplate())
	cmd.SetHelpTemplate(h.helpTemplate())

	// Apply funcs by setting them on the usage/help functions
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		usageTmpl := template.New("usage").Funcs(funcs)
		usageTmpl, err := usageTmpl.Parse(h.usageTemplate())
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return usageTmpl.Execute(command.OutOrStdout(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		helpTmpl := template.New("help").Funcs(funcs)
		helpTmpl, err := helpTmpl.Parse(h.helpTemplate())
		if err != nil {
			command.PrintErrln(err)
			return
		}
		if err := helpTmpl.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
