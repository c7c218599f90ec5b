package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/ui/style"
	"go.trai.ch/zerr"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <name@version>",
		Short: "Print the installation order of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := c.app.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, id := range order {
				_, _ = fmt.Fprintln(w, id.String())
			}
			return nil
		},
	}
}

func (c *CLI) newConflictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts <name@version>",
		Short: "List version conflicts reachable from a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := c.app.Conflicts(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(pairs) == 0 {
				_, _ = fmt.Fprintln(w, style.Success.Render(style.Check+" no conflicts"))
				return nil
			}
			for _, pair := range pairs {
				_, _ = fmt.Fprintln(w, style.Failure.Render(style.Cross+" "+pair.String()))
			}
			return zerr.With(domain.Mark(domain.ErrConflictsFound), "count", len(pairs))
		},
	}
}

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <name@version>",
		Short: "Print the dependency graph of a package in descriptor format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rendered, err := c.app.Graph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
}
