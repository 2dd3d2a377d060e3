package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/cbuild/internal/app"
	"go.trai.ch/cbuild/internal/engine/pipeline"
	"go.trai.ch/cbuild/internal/ui/style"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [script]",
		Short: "Build the project described by a script",
		Long: "Build the project described by a script. Without a script, the first " +
			"*.cbuild file in the working directory is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: c.runBuild,
	}
	addBuildFlags(cmd)
	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "Configuration to build: debug or release")
	cmd.Flags().BoolP("force-rebuild", "f", false, "Recompile every source file")
	cmd.Flags().BoolP("dry-run", "n", false, "Report what would be compiled without compiling")
	cmd.Flags().BoolP("print-commands", "p", false, "Print the toolchain commands as they run")
	cmd.Flags().BoolP("verbose", "v", false, "Show debug output")
}

func (c *CLI) runBuild(cmd *cobra.Command, args []string) error {
	config, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force-rebuild")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	printCommands, _ := cmd.Flags().GetBool("print-commands")
	verbose, _ := cmd.Flags().GetBool("verbose")

	res, err := c.app.Build(cmd.Context(), app.BuildOptions{
		Script:        scriptArg(args),
		Config:        config,
		Force:         force,
		DryRun:        dryRun,
		PrintCommands: printCommands,
		Verbose:       verbose,
	})
	if err != nil {
		return err
	}

	if msg := summarize(res, dryRun); msg != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), style.Summary(style.Check, style.Success, msg))
	}
	return nil
}

func summarize(res pipeline.Result, dryRun bool) string {
	switch {
	case dryRun:
		return fmt.Sprintf("%d file(s) would be compiled", len(res.Compiled))
	case res.Artifact == "" || res.UpToDate:
		return ""
	default:
		return fmt.Sprintf("Built %s (%d file(s) compiled)", filepath.Base(res.Artifact), len(res.Compiled))
	}
}
