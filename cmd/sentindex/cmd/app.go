package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/sentindex/internal/config"
	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
	"github.com/Aman-CERP/sentindex/internal/logging"
	"github.com/Aman-CERP/sentindex/internal/metrics"
	"github.com/Aman-CERP/sentindex/internal/output"
	"github.com/Aman-CERP/sentindex/internal/profiling"
	"github.com/Aman-CERP/sentindex/internal/segment"
	"github.com/Aman-CERP/sentindex/internal/store"
	"github.com/Aman-CERP/sentindex/internal/ui"
)

// app carries the global flags and the per-invocation state shared by the
// subcommands.
type app struct {
	dataDir string
	debug   bool
	noTUI   bool
	profile profiling.Options

	cfg     *config.Config
	metrics *metrics.Metrics
	runID   string
	logger  *slog.Logger
	cleanup func()
	session *profiling.Session
}

// command wraps fn with configuration, logging and metrics setup. The
// metrics textfile is written after fn returns, also on failure.
func (a *app) command(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := a.setup(); err != nil {
			return err
		}
		defer func() { a.finish(cmd.Name(), err) }()

		a.logger.Debug("command_started",
			slog.String("command", cmd.Name()),
			slog.String("data_dir", a.dataDir))
		return fn(cmd, args)
	}
}

func (a *app) setup() error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.Load(wd)
	if err != nil {
		return sierrors.ConfigError(err.Error(), err)
	}
	a.cfg = cfg

	logCfg := logging.Config{
		Level:     cfg.Logging.Level,
		FilePath:  cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
		RunID:     uuid.NewString(),
	}
	if logCfg.FilePath == "" {
		logCfg.FilePath = logging.DefaultLogPath()
	}
	if a.debug {
		logCfg.Level = "debug"
		logCfg.WriteToStderr = true
	}

	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	slog.SetDefault(logger)
	a.logger = logger
	a.cleanup = cleanup
	a.runID = logCfg.RunID
	a.metrics = metrics.New()

	if a.profile.Enabled() {
		session, err := profiling.Start(a.profile)
		if err != nil {
			cleanup()
			a.cleanup = nil
			return err
		}
		a.session = session
	}
	return nil
}

func (a *app) finish(name string, err error) {
	if err != nil {
		a.logger.Error("command_failed",
			slog.String("command", name),
			slog.String("error", err.Error()))
	}
	if a.session != nil {
		if perr := a.session.Stop(); perr != nil {
			a.logger.Warn("profile_write_failed", slog.String("error", perr.Error()))
		}
		a.session = nil
	}
	if werr := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); werr != nil {
		a.logger.Warn("metrics_write_failed", slog.String("error", werr.Error()))
	}
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
}

// openBackend opens the configured store. The caller closes it.
func (a *app) openBackend(ctx context.Context) (store.Backend, error) {
	return store.Open(ctx, a.cfg, a.dataDir)
}

// lockWriter takes the single-writer lock of the data directory.
func (a *app) lockWriter() (*store.WriterLock, error) {
	lock := store.NewWriterLock(a.dataDir)
	if err := lock.Acquire(); err != nil {
		return nil, err
	}
	return lock, nil
}

func (a *app) analyzer() (*segment.Analyzer, error) {
	return segment.NewAnalyzer(segment.Options{
		Abbreviations:    a.cfg.Segmenter.Abbreviations,
		MinTokenLength:   a.cfg.Segmenter.MinTokenLength,
		StopwordsFile:    a.cfg.Segmenter.StopwordsFile,
		StripMarkup:      a.cfg.Segmenter.StripMarkup,
		MarkupExtensions: a.cfg.Segmenter.MarkupExtensions,
	})
}

func (a *app) writer(cmd *cobra.Command) *output.Writer {
	out := cmd.OutOrStdout()
	return output.NewWithColor(out, ui.IsTTY(out) && !ui.DetectNoColor())
}
