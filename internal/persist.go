package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// Persistence is the backing storage for the item store. Load returns the
// raw stored bytes, Save replaces them whole. There is no locking: the menu
// and the watcher are separate processes and the last writer wins.
type Persistence interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// FilePersistence stores the items in a single file. Writes go to a temp
// file in the same directory and are renamed into place, so a crash cannot
// leave a half-written items file behind.
type FilePersistence struct {
	Path string
}

func (f FilePersistence) Load() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f FilePersistence) Save(data []byte) error {
	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace items file: %w", err)
	}
	return nil
}
