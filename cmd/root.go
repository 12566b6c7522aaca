package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/geodrill/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "geodrill",
		Short: "Flag and language geography drills in your terminal",
		Long: "GeoDrill is a terminal quiz for recognising country flags and written languages.\n" +
			"Streaks and per-item progress are stored per player.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, "")
		},
	}

	config.BindFlags(root.PersistentFlags())

	root.AddCommand(newPlayCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newResetCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the command line.
func Execute() error {
	return newRootCmd().Execute()
}
