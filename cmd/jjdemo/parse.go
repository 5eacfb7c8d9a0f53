package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wahlandcase/baklab/internal/jj"
	"github.com/wahlandcase/baklab/internal/ui"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [line...]",
		Short: "Parse jj status lines from the arguments or stdin",
		Example: `  jjdemo parse "Working copy : xvpztrxr 26d5ff49 (empty) (no description set)"
  jj st | grep -E '^(Working copy|Parent commit)' | jjdemo parse`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := args
			if len(lines) == 0 {
				scanner := bufio.NewScanner(opts.stdin)
				for scanner.Scan() {
					lines = append(lines, scanner.Text())
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
			}

			for _, line := range lines {
				if strings.TrimSpace(line) == "" {
					continue
				}
				change, err := jj.ParseStatusLine(line)
				if err != nil {
					return err
				}
				fmt.Fprintf(opts.stdout, "%-13s %s\n", change.Kind.Label(), ui.RenderChange(change))
			}
			return nil
		},
	}
}
