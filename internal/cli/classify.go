package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/dllup/internal/logging"
	"github.com/yaklabco/dllup/pkg/config"
	"github.com/yaklabco/dllup/pkg/fsutil"
	"github.com/yaklabco/dllup/pkg/reporter"
	"github.com/yaklabco/dllup/pkg/runner"
)

type outputFlags struct {
	format     string
	output     string
	strict     bool
	noContext  bool
	noSummary  bool
	compact    bool
	references bool
}

func newClassifyCommand(global *globalFlags) *cobra.Command {
	shared := &classifyFlags{}
	flags := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "classify [paths...]",
		Short: "Classify dllup documents",
		Long:  classifyLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args, global, shared, flags)
		},
	}

	cmd.Flags().AddFlagSet(shared.flagSet())
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, tree, table, json, summary, highlight")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero when any diagnostic is reported")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context under diagnostics")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the closing summary line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")
	cmd.Flags().BoolVar(&flags.references, "references", false, "add reference tables (table format)")

	return cmd
}

const classifyLongDescription = `Classify dllup documents into typed regions.

By default, classifies all .dllu and .dllup files in the current directory
and subdirectories. Specify paths to classify specific files or directories.

Examples:
  dllup classify                        # Classify current directory
  dllup classify posts/                 # Classify a directory
  dllup classify post.dllu -f tree      # Show the span tree of one file
  dllup classify -f json -o spans.json  # Write a JSON report
  dllup classify -g go -g md=markdown   # Bind only two sub-grammars
  dllup classify --strict               # Fail when diagnostics are reported`

func runClassify(cmd *cobra.Command, args []string, global *globalFlags, shared *classifyFlags, flags *outputFlags) error {
	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	cli := &config.Config{Format: config.OutputFormat(format), Strict: flags.strict}
	shared.apply(cmd.Flags(), cli)

	sess, err := newSession(cmd, global, cli)
	if err != nil {
		return err
	}

	result, err := sess.run(args)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writer := io.Writer(&buf)
	if flags.output == "" {
		writer = cmd.OutOrStdout()
	}

	rep, err := reporter.New(reporter.Options{
		Writer:         writer,
		Format:         reporter.Format(sess.cfg.Format),
		Color:          sess.color(flags.output != ""),
		ShowContext:    !flags.noContext,
		ShowSummary:    !flags.noSummary,
		ShowReferences: flags.references,
		Compact:        flags.compact,
		WorkingDir:     sess.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(sess.ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if flags.output != "" {
		written, err := fsutil.WriteAtomicIfChanged(sess.ctx, flags.output, buf.Bytes(), fsutil.DefaultFileMode)
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		sess.logger.Debug("report written", logging.FieldOutput, flags.output, logging.FieldReused, !written)
	}

	return errorForExitCode(ExitCodeFromResult(result, sess.cfg.Strict))
}

// run discovers and classifies the documents under paths.
func (s *session) run(paths []string) (*runner.Result, error) {
	opts := runner.OptionsFromConfig(s.cfg, paths)
	opts.WorkingDir = s.workDir

	s.logger.Debug("starting classification",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New(s.classifier).Run(s.ctx, opts)
	if err != nil {
		return nil, errors.Join(errors.New("classification failed"), err)
	}

	s.logger.Debug("classification finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldRegions, result.Stats.Regions,
		logging.FieldDiagnostics, result.Stats.Diagnostics,
	)
	return result, nil
}

// color returns the effective color mode. Reports written to a file are never
// styled.
func (s *session) color(toFile bool) string {
	if toFile {
		return string(config.ColorNever)
	}
	return string(s.cfg.Color)
}
