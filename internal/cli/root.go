// Package cli provides the Cobra command structure for dllup.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/dllup/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root dllup command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	global := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "dllup",
		Short: "A lexical classifier for dllup documents",
		Long: `dllup classifies dllup markup into typed regions: headings, lists,
fenced code, tables, links and the rest.

Embedded code is handed to sub-grammars chosen by the fence's language tag.
Classification never fails: malformed input degrades to plain text and is
reported as a diagnostic.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if global.debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().AddFlagSet(global.flagSet())
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(newClassifyCommand(global))
	rootCmd.AddCommand(newRefsCommand(global))
	rootCmd.AddCommand(newGrammarsCommand(global))
	rootCmd.AddCommand(newWatchCommand(global))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(global.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
