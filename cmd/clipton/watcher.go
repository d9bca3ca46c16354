package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/madprops/clipton/internal"
	"github.com/spf13/cobra"
)

func NewWatcherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watcher",
		Short: "Watch the clipboard and record copied text",
		Long:  `Block on clipboard change events and store every copied text in the history.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths := internal.DefaultPaths()
			if err := paths.Setup(); err != nil {
				return err
			}

			settings, err := internal.LoadSettings(paths.SettingsPath)
			if err != nil {
				return err
			}

			if err := internal.ProbeBinary(internal.NotifierBinary); err != nil {
				return fmt.Errorf("the watcher needs 'copyevent' to be installed: %w", err)
			}

			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				Prefix:          "clipton",
			})

			watcher := internal.NewWatcher(
				paths,
				settings,
				internal.CopyeventNotifier{},
				internal.NewClipboard(),
				logger,
			)
			return watcher.Run(cmd.Context())
		},
	}
}
