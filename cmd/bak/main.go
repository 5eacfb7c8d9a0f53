package main

// Must be first import - fixes Warp terminal delay before lipgloss loads
import _ "github.com/wahlandcase/baklab/internal/termfix"

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wahlandcase/baklab/internal/backup"
	"github.com/wahlandcase/baklab/internal/logger"
	"github.com/wahlandcase/baklab/internal/termfix"
	"github.com/wahlandcase/baklab/internal/ui"
)

var (
	errNoFiles      = errors.New("no files given")
	errBackupFailed = errors.New("backup failed")
)

func main() {
	termfix.Apply(os.Stdout)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errNoFiles) && !errors.Is(err, errBackupFailed) {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	log := logger.NewWithOutput(false, stderr)

	rootCmd := &cobra.Command{
		Use:   "bak [file...]",
		Short: "Copy each file to <file>.bak",
		Example: `  bak notes.txt report.pdf
  bak -notes          (names starting with "-" are files too)
  bak -- -h           (back up a file named -h)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Every argument is a file name, including ones that start with "-"
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer log.Sync()

			fmt.Fprintln(stdout, ui.RenderTitle(ui.BakTitle))

			switch {
			case len(args) > 0 && args[0] == "--":
				args = args[1:]
			case len(args) == 1 && (args[0] == "-h" || args[0] == "--help"):
				return cmd.Usage()
			}

			if len(args) == 0 {
				_ = cmd.Usage()
				return errNoFiles
			}

			results, err := backup.BackupAll(args)
			for _, r := range results {
				fmt.Fprintln(stdout, ui.RenderBackup(r.Source, r.Target, r.Bytes))
			}
			if err != nil {
				for _, e := range unwrapAll(err) {
					log.Error("backup failed", zap.Error(e))
				}
				return errBackupFailed
			}
			return nil
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd
}

// unwrapAll splits an errors.Join result into its parts
func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
