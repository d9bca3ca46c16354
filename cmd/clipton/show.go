package main

import (
	"context"
	"fmt"
	"time"

	"github.com/madprops/clipton/internal"
	"github.com/spf13/cobra"
)

func NewShowCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Open the clipboard history menu",
		Long:  `Show the recorded history in rofi and copy the chosen item back to the clipboard.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd.Context(), version)
		},
	}
}

func runShow(ctx context.Context, version string) error {
	paths := internal.DefaultPaths()
	if err := paths.Setup(); err != nil {
		return err
	}

	settings, err := internal.LoadSettings(paths.SettingsPath)
	if err != nil {
		return err
	}

	if err := internal.ProbeBinary(internal.SelectorBinary); err != nil {
		return fmt.Errorf("the menu needs 'rofi' to be installed: %w", err)
	}

	var titles internal.TitlePort
	if settings.EnableTitles {
		titles = internal.NewTitleResolver()
	}

	store := internal.NewItemStore(settings, internal.FilePersistence{Path: paths.ItemsPath}, titles)
	if err := store.Load(); err != nil {
		return err
	}

	menu := internal.NewMenu(
		store,
		internal.RofiSelector{},
		internal.NewClipboard(),
		settings,
		internal.MenuPrompt(version),
		func(items []internal.Item) []string {
			return internal.FormatMenuLines(items, time.Now())
		},
	)
	return menu.Run(ctx)
}
