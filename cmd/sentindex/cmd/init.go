package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/sentindex/configs"
	"github.com/Aman-CERP/sentindex/internal/config"
	"github.com/Aman-CERP/sentindex/internal/store"
)

func newInitCmd(a *app) *cobra.Command {
	var writeConfig bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the index store",
		Long: `Create the index structures in the data directory. Existing data is
never removed; running init twice is harmless.

With --write-config a commented .sentindex.yaml is written to the working
directory if none exists.`,
		Args: cobra.NoArgs,
		RunE: a.command(func(cmd *cobra.Command, _ []string) error {
			out := a.writer(cmd)

			if writeConfig {
				path, err := writeProjectConfig()
				if err != nil {
					return err
				}
				if path == "" {
					out.Warning("Project config already present, not overwritten")
				} else {
					out.Successf("Wrote %s", path)
				}
			}

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

			created, err := backend.Initialize(cmd.Context())
			if err != nil {
				return err
			}
			if created {
				out.Successf("Store initialized (%s)", store.Describe(a.cfg, a.dataDir))
			} else {
				out.Info("No need to initialize, store already present")
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&writeConfig, "write-config", false, "Also write a .sentindex.yaml template")

	return cmd
}

// writeProjectConfig writes the config template into the working directory.
// It returns "" when a project config already exists.
func writeProjectConfig() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	if config.ProjectConfigPath(wd) != "" {
		return "", nil
	}
	path := filepath.Join(wd, ".sentindex.yaml")
	if err := os.WriteFile(path, []byte(configs.ProjectConfigTemplate), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
