package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/dllup/internal/ui/pretty"
	"github.com/yaklabco/dllup/pkg/analysis"
	"github.com/yaklabco/dllup/pkg/config"
	"github.com/yaklabco/dllup/pkg/runner"
)

const formatJSON = "json"

// fileReferences is the JSON form of one file's reference table.
type fileReferences struct {
	Path       string                    `json:"path"`
	References []analysis.ReferenceEntry `json:"references"`
}

func newRefsCommand(global *globalFlags) *cobra.Command {
	shared := &classifyFlags{}
	var format string

	cmd := &cobra.Command{
		Use:   "refs [paths...]",
		Short: "List link reference definitions",
		Long: `List the authoritative link reference table of each document, after the
duplicate policy has been applied.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != formatJSON {
				return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrUsage, format)
			}

			cli := &config.Config{}
			shared.apply(cmd.Flags(), cli)
			sess, err := newSession(cmd, global, cli)
			if err != nil {
				return err
			}

			result, err := sess.run(args)
			if err != nil {
				return err
			}

			if format == formatJSON {
				err = writeReferencesJSON(cmd.OutOrStdout(), result, sess.workDir)
			} else {
				writeReferencesTable(cmd.OutOrStdout(), result, sess)
			}
			if err != nil {
				return err
			}
			return errorForExitCode(ExitCodeFromResult(result, false))
		},
	}

	cmd.Flags().AddFlagSet(shared.flagSet())
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")

	return cmd
}

func writeReferencesTable(out io.Writer, result *runner.Result, sess *session) {
	styles := pretty.NewStyles(pretty.IsColorEnabled(string(sess.cfg.Color), out))
	formatter := pretty.NewTableFormatter(styles, pretty.TerminalWidth(out))

	for _, file := range result.Files {
		if file.Result == nil || file.Result.Refs.Len() == 0 {
			continue
		}
		fmt.Fprintln(out, styles.Bold.Render(relativePath(sess.workDir, file.Path)))
		fmt.Fprint(out, formatter.FormatReferences(file.Result.Refs))
	}
}

func writeReferencesJSON(out io.Writer, result *runner.Result, workDir string) error {
	report := analysis.Analyze(result, analysis.Options{IncludeReferences: true, WorkingDir: workDir})

	files := make([]fileReferences, 0, len(report.Files))
	for _, file := range report.Files {
		if file.Error != "" {
			continue
		}
		references := file.References
		if references == nil {
			references = []analysis.ReferenceEntry{}
		}
		files = append(files, fileReferences{Path: file.Path, References: references})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(files); err != nil {
		return fmt.Errorf("encoding references: %w", err)
	}
	return nil
}

// relativePath shortens path when it lies beneath workDir.
func relativePath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
