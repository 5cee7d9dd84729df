package cmd

import (
	"github.com/spf13/cobra"
)

func newPickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pick [url|file]",
		Short:         "Force interactive format picking",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		PreRunE:       runPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Force TUI; if stdout is not a terminal, the program errors out.
			return runExecute(cmd, args, runMode{ForceTUI: true})
		},
	}
	bindRunFlags(cmd.Flags())
	// The TUI is the whole point of this subcommand.
	if f := cmd.Flags().Lookup("no-ui"); f != nil {
		f.Hidden = true
	}
	return cmd
}
