package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cbuild/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [script]",
		Short: "Forget the recorded timestamps so the next build starts over",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			return c.app.Clean(cmd.Context(), app.CleanOptions{
				Script: scriptArg(args),
				All:    all,
			})
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Also remove object files and build artifacts")

	return cmd
}
