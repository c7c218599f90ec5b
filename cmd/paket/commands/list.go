package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/paket/internal/ui/style"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			receipts, err := c.app.List()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, r := range receipts {
				detail := r.InstalledAt.Format(time.RFC3339)
				if r.Source != "" {
					detail += " from " + r.Source
				}
				_, _ = fmt.Fprintf(w, "%s %s\n", r.Identity.String(), style.Muted.Render(detail))
			}
			return nil
		},
	}
}

func (c *CLI) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the repository index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := c.app.Search(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, e := range entries {
				line := style.Accent.Render(e.Identity.String())
				if e.Description != "" {
					line += " " + style.Muted.Render(e.Description)
				}
				_, _ = fmt.Fprintln(w, line)
			}
			return nil
		},
	}
}
