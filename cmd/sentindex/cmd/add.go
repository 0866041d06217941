package cmd

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
	"github.com/Aman-CERP/sentindex/internal/ingest"
	"github.com/Aman-CERP/sentindex/internal/store"
	"github.com/Aman-CERP/sentindex/internal/ui"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add <file>",
		Aliases: []string{"add-doc"},
		Short:   "Add one document to the index",
		Long: `Segment a UTF-8 text file into sentences and index its words. A path
that is already registered is skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: a.command(func(cmd *cobra.Command, args []string) error {
			out := a.writer(cmd)

			lock, err := a.lockWriter()
			if err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			backend, err := a.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = backend.Close() }()

			ctrl, err := a.controller(backend, nil)
			if err != nil {
				return err
			}

			res, err := ctrl.IngestDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if res.Status == ingest.StatusSkipped {
				out.Infof("Doc %s skipped, already added", res.Path)
				return nil
			}
			out.Infof("Found %d paragraphs", res.Paragraphs)
			out.Infof("Added %d new words", res.NewWords)
			return nil
		}),
	}
}

func newAddDirCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add-dir <dir> [maxdocs]",
		Aliases: []string{"add_dir"},
		Short:   "Add every file of a directory to the index",
		Long: `Add the entries of a directory in name order, stopping after maxdocs
entries when given. Entries that are not readable text files are reported
and skipped; already registered paths are skipped.

Progress is shown interactively on a terminal, or as plain lines with
--no-tui, in CI and when output is piped.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: a.command(func(cmd *cobra.Command, args []string) error {
			dir := args[0]

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var opts []ingest.DirOption
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil || n < 0 {
					return sierrors.InvalidArgumentError("Invalid max docs argument", err).
						WithDetail("maxdocs", args[1])
				}
				opts = append(opts, ingest.WithMaxDocs(n))
			}

			lock, err := a.lockWriter()
			if err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			backend, err := a.openBackend(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = backend.Close() }()

			renderer := ui.NewRenderer(ui.NewConfig(cmd.OutOrStdout(),
				ui.WithForcePlain(a.noTUI),
				ui.WithNoColor(ui.DetectNoColor()),
				ui.WithDir(dir),
			))
			if err := renderer.Start(ctx); err != nil {
				return err
			}

			ctrl, err := a.controller(backend, ui.NewIngestObserver(renderer))
			if err != nil {
				_ = renderer.Stop()
				return err
			}

			res, err := ctrl.IngestDirectory(ctx, dir, opts...)
			_ = renderer.Stop()
			if err != nil {
				return err
			}

			out := a.writer(cmd)
			if res.Committed > 0 {
				out.Successf("%d files added successfully", res.Committed)
			} else {
				out.Info("All files already in database")
			}
			return nil
		}),
	}
}

func (a *app) controller(backend store.Backend, observer ingest.Observer) (*ingest.Controller, error) {
	analyzer, err := a.analyzer()
	if err != nil {
		return nil, sierrors.ConfigError("failed to build analyzer", err)
	}
	return ingest.NewController(ingest.ControllerConfig{
		Commit:    a.cfg.Storage.Commit,
		ReadAhead: a.cfg.Ingest.ReadAhead,
		AutoInit:  a.cfg.Ingest.AutoInit,
	}, ingest.ControllerDependencies{
		Backend:  backend,
		Analyzer: analyzer,
		Metrics:  a.metrics,
		Observer: observer,
	})
}
