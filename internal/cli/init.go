package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/dllup/internal/configloader"
	"github.com/yaklabco/dllup/internal/logging"
	"github.com/yaklabco/dllup/pkg/config"
	"github.com/yaklabco/dllup/pkg/grammar/builtin"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new dllup configuration file",
		Long: `Create a new .dllup.yml configuration file in the current directory
with sensible defaults.

Examples:
  dllup init                        Create minimal .dllup.yml
  dllup init --full                 List every default grammar binding
  dllup init --format toml          Create dllup.toml instead
  dllup init --output custom.yml    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "list every default grammar binding")
	cmd.Flags().StringVar(&flags.format, "format", config.TemplateYAML, "output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .dllup.yml or dllup.toml)")

	return cmd
}

func runInit(ctx context.Context, flags *initFlags) error {
	logger := logging.FromContext(ctx)

	if flags.format != config.TemplateYAML && flags.format != config.TemplateTOML {
		return fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigYAML
		if flags.format == config.TemplateTOML {
			outputPath = configloader.ProjectConfigTOML
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:     flags.full,
		Format:   flags.format,
		Grammars: builtin.DefaultSpecs,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteConfig(ctx, absPath, content, flags.force); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'dllup grammars' to see the bound sub-grammars")

	return nil
}
