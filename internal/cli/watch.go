package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/dllup/internal/logging"
	"github.com/yaklabco/dllup/pkg/classify"
	"github.com/yaklabco/dllup/pkg/config"
	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/fsutil"
	"github.com/yaklabco/dllup/pkg/reporter"
	"github.com/yaklabco/dllup/pkg/runner"
)

func newWatchCommand(global *globalFlags) *cobra.Command {
	shared := &classifyFlags{}
	var format string
	var clearScreen bool

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Reclassify a document whenever it changes",
		Long: `Watch a single document and print it again each time it is saved.
Only the part of the document after the last safe checkpoint before the
first edited line is rescanned.

Examples:
  dllup watch post.dllu             # Repaint the highlighted source
  dllup watch post.dllu -f tree     # Print the span tree on every save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := reporter.ParseFormat(format)
			if err != nil || parsed == reporter.FormatSummary {
				return fmt.Errorf("%w: watch supports text, tree, table, json and highlight output", ErrUsage)
			}

			cli := &config.Config{}
			shared.apply(cmd.Flags(), cli)
			sess, err := newSession(cmd, global, cli)
			if err != nil {
				return err
			}

			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			out := cmd.OutOrStdout()
			rep, err := reporter.New(reporter.Options{
				Writer:      out,
				Format:      parsed,
				Color:       string(sess.cfg.Color),
				ShowContext: true,
				WorkingDir:  sess.workDir,
			})
			if err != nil {
				return fmt.Errorf("create reporter: %w", err)
			}

			logger := logging.NewInteractive(logging.Default().GetLevel().String())
			ctx, stop := signal.NotifyContext(logging.WithLogger(sess.ctx, logger), os.Interrupt)
			defer stop()

			watch := &documentWatch{
				path:       path,
				classifier: sess.classifier,
				logger:     logger,
				render: func(ctx context.Context, outcome runner.FileOutcome) error {
					if clearScreen {
						fmt.Fprint(out, "\033[H\033[2J")
					}
					_, err := rep.Report(ctx, &runner.Result{Files: []runner.FileOutcome{outcome}})
					return err
				},
			}
			return watch.run(ctx)
		},
	}

	cmd.Flags().AddFlagSet(shared.flagSet())
	cmd.Flags().StringVarP(&format, "format", "f", "highlight", "output format: text, tree, table, json, highlight")
	cmd.Flags().BoolVar(&clearScreen, "clear", false, "clear the screen before each repaint")

	return cmd
}

// documentWatch keeps the latest classification of one file and refreshes it
// incrementally.
type documentWatch struct {
	path       string
	classifier *classify.Classifier
	logger     *log.Logger
	render     func(ctx context.Context, outcome runner.FileOutcome) error

	info   *fsutil.FileInfo
	result *classify.Result
}

// refresh reclassifies the file if its content changed since the last
// refresh and renders the new result. It reports whether anything changed.
func (w *documentWatch) refresh(ctx context.Context) (bool, error) {
	if w.info != nil {
		changed, err := fsutil.CheckModified(ctx, w.info)
		if err != nil || !changed {
			return false, err
		}
	}

	content, info, err := fsutil.ReadFile(ctx, w.path)
	if err != nil {
		return false, err
	}
	if w.info != nil && w.info.Hash == info.Hash {
		w.info = info
		return false, nil
	}

	started := time.Now()
	doc := document.New(w.path, content)
	result := w.classifier.Reclassify(w.result, doc)
	w.logger.Debug("reclassified",
		logging.FieldPath, w.path,
		logging.FieldRegions, len(result.Blocks),
		logging.FieldDiagnostics, len(result.Diagnostics),
		logging.FieldElapsed, time.Since(started),
	)

	w.info, w.result = info, result
	if w.render == nil {
		return true, nil
	}
	return true, w.render(ctx, runner.FileOutcome{Path: w.path, Info: info, Result: result})
}

// run renders the file once and then after every change until ctx is done.
// The parent directory is watched so that editors that replace the file on
// save are followed.
func (w *documentWatch) run(ctx context.Context) error {
	if _, err := w.refresh(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.logger.Info("watching", logging.FieldPath, w.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if _, err := w.refresh(ctx); err != nil && !errors.Is(err, fsutil.ErrNotFound) {
				w.logger.Warn("reclassify failed", logging.FieldError, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.FieldError, err)
		}
	}
}
