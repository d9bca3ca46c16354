package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths locates the per-user config directory and the files inside it.
type Paths struct {
	ConfigDir    string
	ItemsPath    string
	SettingsPath string
}

func DefaultPaths() Paths {
	home, _ := os.UserHomeDir()
	dir := filepath.Join(home, ".config", "clipton")
	return Paths{
		ConfigDir:    dir,
		ItemsPath:    filepath.Join(dir, "items.json"),
		SettingsPath: filepath.Join(dir, "settings.json"),
	}
}

// Setup creates the config directory and empty files on first run.
func (p Paths) Setup() error {
	if err := os.MkdirAll(p.ConfigDir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	for _, path := range []string{p.ItemsPath, p.SettingsPath} {
		if err := touch(path); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}
