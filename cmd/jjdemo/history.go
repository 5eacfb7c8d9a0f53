package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wahlandcase/baklab/internal/ui"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var prune bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List scratch repositories left on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.historyStore()
			if err != nil {
				return err
			}

			fmt.Fprintln(opts.stdout, ui.RenderBanner("kept scratch repositories"))
			fmt.Fprintln(opts.stdout)

			if prune {
				removed, err := store.Prune()
				for _, dir := range removed {
					fmt.Fprintln(opts.stdout, ui.StatusLine("ok", "removed "+dir))
				}
				return err
			}

			entries, err := store.Load()
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(opts.stdout, ui.DimStyle.Render("no scratch repositories"))
				return nil
			}

			for _, e := range entries {
				status := "kept"
				if e.Stopped {
					status = "stopped"
				}
				fmt.Fprintln(opts.stdout, ui.StatusLine(status, fmt.Sprintf("%s  [%s]  %s",
					e.Dir, strings.Join(e.ChangeIDs, " "), ui.RenderAge(e.CreatedAt))))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "Delete every recorded scratch repository")
	return cmd
}
