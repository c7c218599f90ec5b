package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/paket/internal/app"
	"go.trai.ch/paket/internal/ui/style"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <name@version>",
		Short: "Install a package and its dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			policy, _ := cmd.Flags().GetString("policy")
			noRecover, _ := cmd.Flags().GetBool("no-recover")

			out, err := c.app.Install(cmd.Context(), args[0], app.InstallOptions{
				DryRun:    dryRun,
				Policy:    policy,
				NoRecover: noRecover,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, pair := range out.Conflicts {
				_, _ = fmt.Fprintln(w, style.Muted.Render(style.Tilde+" settled "+pair.String()))
			}

			verb := "installed"
			if dryRun {
				verb = "planned"
			}
			summary := fmt.Sprintf("%s %s %d packages", style.Check, verb, len(out.Order))
			_, _ = fmt.Fprintf(w, "%s %s\n", style.Success.Render(summary), style.Muted.Render("(run "+out.RunID+")"))
			return nil
		},
	}
	cmd.Flags().BoolP("dry-run", "n", false, "Log the install steps without recording receipts")
	cmd.Flags().StringP("policy", "p", "", "Conflict policy for this run: fail or prefer-highest")
	cmd.Flags().Bool("no-recover", false, "Refuse to start when an earlier run left the journal in progress")
	return cmd
}
