// Package cmd provides the CLI commands for sentindex.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
	"github.com/Aman-CERP/sentindex/pkg/version"
)

// DefaultDataDir holds the store, the writer lock and the snapshot file.
const DefaultDataDir = ".sentindex"

// NewRootCmd creates the root command for sentindex CLI.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "sentindex",
		Short: "Sentence-level inverted index over plain-text documents",
		Long: `sentindex splits documents into paragraphs and sentences and records,
for every word, the sentences it appears in.

Add documents with 'sentindex add' or 'sentindex add-dir', then look words
up with 'sentindex query <word>'. The index persists in --data-dir.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("sentindex version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&a.dataDir, "data-dir", DefaultDataDir, "Directory holding the index")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging to file and stderr")
	cmd.PersistentFlags().BoolVar(&a.noTUI, "no-tui", false, "Disable the interactive progress display")

	cmd.PersistentFlags().StringVar(&a.profile.CPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&a.profile.Heap, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&a.profile.Trace, "profile-trace", "", "Write execution trace to file")

	cmd.AddCommand(newInitCmd(a))
	cmd.AddCommand(newAddCmd(a))
	cmd.AddCommand(newAddDirCmd(a))
	cmd.AddCommand(newQueryCmd(a))
	cmd.AddCommand(newCleanCmd(a))
	cmd.AddCommand(newCheckCmd(a))
	cmd.AddCommand(newStatsCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command and prints a failure for the terminal.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		_, _ = fmt.Fprint(os.Stderr, sierrors.FormatForCLI(err))
	}
	return err
}
