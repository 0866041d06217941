package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
	"github.com/Aman-CERP/sentindex/internal/query"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func validateFormat(format string) error {
	if format != formatText && format != formatJSON {
		return sierrors.InvalidArgumentError(
			fmt.Sprintf("unknown format %q (valid: text, json)", format), nil)
	}
	return nil
}

func newQueryCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "query <word>",
		Aliases: []string{"query-word"},
		Short:   "Show the sentences containing a word",
		Long: `Look up a word, matched exactly and case-sensitively, and print the
documents and sentences it appears in.`,
		Args: cobra.ExactArgs(1),
		RunE: a.command(func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			out := a.writer(cmd)

			backend, err := a.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = backend.Close() }()

			engine, err := query.NewEngine(backend, query.EngineConfig{
				DocCacheSize: a.cfg.Query.DocCacheSize,
			}, a.metrics)
			if err != nil {
				return err
			}

			res, err := engine.QueryWord(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if format == formatJSON {
				return out.JSON(res)
			}
			if res.CorpusDocuments == 0 {
				out.Info("No docs added, cannot query words")
				return nil
			}
			out.QueryResult(res, a.cfg.Query.WrapWidth)
			return nil
		}),
	}

	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text or json")

	return cmd
}
