package main

import (
	"github.com/spf13/cobra"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "clipton",
		Short:         "Clipboard history manager",
		Long:          `Records copied text into a bounded history and recalls it through a rofi menu.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		// Any argument that is not a known subcommand opens the menu.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd.Context(), version)
		},
	}

	rootCmd.AddCommand(
		NewShowCmd(version),
		NewWatcherCmd(),
	)

	return rootCmd
}
