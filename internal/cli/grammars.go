package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/dllup/internal/ui/pretty"
	"github.com/yaklabco/dllup/pkg/config"
	"github.com/yaklabco/dllup/pkg/grammar"
)

// bindingInfo represents a grammar binding in JSON output.
type bindingInfo struct {
	Tag     string `json:"tag"`
	Grammar string `json:"grammar"`
	Dialect string `json:"dialect,omitempty"`
}

type grammarsOutput struct {
	Bindings []bindingInfo `json:"bindings"`
	Warnings []string      `json:"warnings,omitempty"`
}

func newGrammarsCommand(global *globalFlags) *cobra.Command {
	var specs []string
	var format string

	cmd := &cobra.Command{
		Use:   "grammars",
		Short: "List sub-grammar bindings",
		Long: `List the language tags that fenced blocks can name, with the grammar and
dialect bound to each. Bindings come from the "grammars" configuration key
or the --grammar flag; without either the builtin default set is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "text" && format != formatJSON {
				return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrUsage, format)
			}

			cli := &config.Config{}
			if cmd.Flags().Changed("grammar") {
				cli.Grammars = specs
			}
			sess, err := newSession(cmd, global, cli)
			if err != nil {
				return err
			}

			registry := sess.classifier.Registry()
			if format == formatJSON {
				return writeBindingsJSON(cmd.OutOrStdout(), registry)
			}

			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(string(sess.cfg.Color), out))
			formatter := pretty.NewTableFormatter(styles, pretty.TerminalWidth(out))
			fmt.Fprint(out, formatter.FormatBindings(registry.Bindings()))
			fmt.Fprintln(out, styles.Dim.Render(fmt.Sprintf("%d grammars bound", len(registry.Tags()))))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&specs, "grammar", "g", nil, "sub-grammar binding tag[=grammar][.dialect] (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")

	return cmd
}

func writeBindingsJSON(out io.Writer, registry *grammar.Registry) error {
	output := grammarsOutput{Warnings: registry.Warnings()}
	for _, binding := range registry.Bindings() {
		output.Bindings = append(output.Bindings, bindingInfo{
			Tag:     binding.Tag,
			Grammar: binding.Grammar,
			Dialect: binding.Dialect,
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("encoding grammars: %w", err)
	}
	return nil
}
