package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/dllup/internal/configloader"
	"github.com/yaklabco/dllup/internal/logging"
	"github.com/yaklabco/dllup/pkg/classify"
	"github.com/yaklabco/dllup/pkg/config"
	"github.com/yaklabco/dllup/pkg/refs"
)

// session is the resolved state a command runs with.
type session struct {
	ctx        context.Context
	cfg        *config.Config
	workDir    string
	logger     *log.Logger
	classifier *classify.Classifier
}

// newSession loads configuration with cli as the highest-precedence layer and
// builds the classifier it describes.
func newSession(cmd *cobra.Command, global *globalFlags, cli *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if cmd.Flags().Changed("color") {
		cli.Color = config.ColorMode(global.color)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	classifier, err := newClassifier(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	logger.Debug("configuration resolved",
		logging.FieldGrammars, len(classifier.Registry().Tags()),
		logging.FieldPolicy, cfg.DuplicateRefs,
		logging.FieldJobs, cfg.Jobs,
	)

	return &session{
		ctx:        logging.WithLogger(ctx, logger),
		cfg:        cfg,
		workDir:    workDir,
		logger:     logger,
		classifier: classifier,
	}, nil
}

// newClassifier builds a classifier over the configured grammars. Bindings
// that could not be made are logged as warnings.
func newClassifier(cfg *config.Config, logger *log.Logger) (*classify.Classifier, error) {
	policy, err := refs.ParsePolicy(cfg.DuplicateRefs)
	if err != nil {
		return nil, err
	}

	classifier := classify.NewWithGrammars(cfg.Grammars,
		classify.WithLogger(logger),
		classify.WithDuplicatePolicy(policy),
		classify.WithGuessUntagged(config.Enabled(cfg.GuessUntagged)),
		classify.WithHeadingAnchors(config.Enabled(cfg.HeadingAnchors)),
	)
	for _, warning := range classifier.Registry().Warnings() {
		logger.Warn("grammar binding skipped", logging.FieldError, warning)
	}
	return classifier, nil
}
