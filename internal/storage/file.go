package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// File persists each snapshot key as one file under a base directory.
// Writes go through a temp file and an atomic rename so a crashed write
// never leaves a truncated snapshot behind.
type File struct {
	baseDir string
}

// NewFile ensures the base directory exists and returns a handle.
func NewFile(baseDir string) (*File, error) {
	if baseDir == "" {
		baseDir = "./data"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &File{baseDir: baseDir}, nil
}

// Load reads the file backing the given key.
func (f *File) Load(_ context.Context, key string) ([]byte, bool, error) {
	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return raw, true, nil
}

// Save writes every key of the snapshot via temp file + rename.
func (f *File) Save(_ context.Context, snapshot map[string][]byte) error {
	for key, value := range snapshot {
		if err := f.writeAtomic(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (f *File) writeAtomic(key string, value []byte) error {
	target := f.path(key)
	tmp, err := os.CreateTemp(f.baseDir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()           //nolint:errcheck
		os.Remove(tmpName)    //nolint:errcheck
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("close snapshot %s: %w", key, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("commit snapshot %s: %w", key, err)
	}
	return nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.baseDir, key+".json")
}
