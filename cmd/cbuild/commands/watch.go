package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cbuild/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [script]",
		Short: "Rebuild whenever a source, header or the script changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, _ := cmd.Flags().GetString("config")
			printCommands, _ := cmd.Flags().GetBool("print-commands")
			verbose, _ := cmd.Flags().GetBool("verbose")

			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Script:        scriptArg(args),
				Config:        config,
				PrintCommands: printCommands,
				Verbose:       verbose,
			})
		},
	}

	cmd.Flags().StringP("config", "c", "", "Configuration to build: debug or release")
	cmd.Flags().BoolP("print-commands", "p", false, "Print the toolchain commands as they run")
	cmd.Flags().BoolP("verbose", "v", false, "Show debug output")

	return cmd
}
