package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/paket/internal/app"
	"go.trai.ch/paket/internal/ui/style"
)

func (c *CLI) newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <name@version>",
		Aliases: []string{"uninstall"},
		Short:   "Remove an installed package, keeping its dependencies",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			noRecover, _ := cmd.Flags().GetBool("no-recover")

			out, err := c.app.Remove(cmd.Context(), args[0], app.RemoveOptions{
				DryRun:    dryRun,
				NoRecover: noRecover,
			})
			if err != nil {
				return err
			}

			verb := "removed"
			if dryRun {
				verb = "would remove"
			}
			summary := fmt.Sprintf("%s %s %s", style.Check, verb, args[0])
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", style.Success.Render(summary), style.Muted.Render("(run "+out.RunID+")"))
			return nil
		},
	}
	cmd.Flags().BoolP("dry-run", "n", false, "Log the removal without deleting the receipt")
	cmd.Flags().Bool("no-recover", false, "Refuse to start when an earlier run left the journal in progress")
	return cmd
}
