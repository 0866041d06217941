package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/sentindex/internal/config"
	"github.com/Aman-CERP/sentindex/internal/store"
)

// statsReport is the JSON form of the stats command.
type statsReport struct {
	store.Stats
	Store     string `json:"store"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

func newStatsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index counts",
		Args:  cobra.NoArgs,
		RunE: a.command(func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			out := a.writer(cmd)

			backend, err := a.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = backend.Close() }()

			tx, err := backend.Begin(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := tx.Stats(cmd.Context())
			_ = tx.Rollback()
			if err != nil {
				return err
			}
			a.metrics.SetStoreSize(stats.Documents, stats.Sentences, stats.Words)

			report := statsReport{
				Stats:     stats,
				Store:     store.Describe(a.cfg, a.dataDir),
				SizeBytes: a.storeSize(),
			}
			if format == formatJSON {
				return out.JSON(report)
			}
			out.Stats(stats, report.Store, report.SizeBytes)
			return nil
		}),
	}

	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text or json")

	return cmd
}

// storeSize returns the size of the local store file, or -1 when the store
// is remote or cannot be inspected.
func (a *app) storeSize() int64 {
	if a.cfg.Storage.Backend == config.BackendSQL && a.cfg.Storage.DSN != "" {
		return -1
	}
	path := a.cfg.StoragePath(a.dataDir)
	if path == "" {
		return -1
	}
	info, err := os.Stat(path)
	if err != nil {
		return -1
	}
	return info.Size()
}
