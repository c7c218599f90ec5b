package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/ui/style"
)

func (c *CLI) newJournalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "journal",
		Short: "Show the transaction journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Journal()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "state: %s\n", style.Accent.Render(report.State.String()))
			for _, entry := range report.Entries {
				marker := style.Arrow
				if entry.Kind != domain.EntryStep {
					marker = style.Muted.Render(style.Tilde)
				}
				_, _ = fmt.Fprintf(w, "  %s %s\n", marker, entry.Line())
			}
			return nil
		},
	}
}

func (c *CLI) newRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Discard a transaction left in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Rollback(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), style.Success.Render(style.Check+" journal cleared"))
			return nil
		},
	}
}
