package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
	"github.com/Aman-CERP/sentindex/internal/index"
)

func newCheckCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the integrity of the index",
		Long: `Verify the stored data and the cross references between documents,
sentences and postings. Exits non-zero when an issue is found.`,
		Args: cobra.NoArgs,
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

			res, err := index.NewConsistencyChecker(backend).Check(cmd.Context())
			if err != nil {
				return err
			}
			a.metrics.SetStoreSize(res.Documents, res.Sentences, res.Words)

			if format == formatJSON {
				if err := out.JSON(res); err != nil {
					return err
				}
			} else {
				out.CheckResult(res)
			}
			if !res.OK() {
				return sierrors.CorruptError(
					fmt.Sprintf("%d inconsistencies found", len(res.Inconsistencies)), nil)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text or json")

	return cmd
}
