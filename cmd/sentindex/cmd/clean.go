package cmd

import (
	"github.com/spf13/cobra"
)

func newCleanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "clean",
		Aliases: []string{"reset"},
		Short:   "Remove every document, sentence and word from the index",
		Args:    cobra.NoArgs,
		RunE: a.command(func(cmd *cobra.Command, _ []string) error {
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

			removed, err := backend.Reset(cmd.Context())
			if err != nil {
				return err
			}
			if removed {
				out.Success("Database cleaned")
			} else {
				out.Info("Nothing to clean")
			}
			return nil
		}),
	}
}
