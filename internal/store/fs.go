package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend stores each series document as one JSON file in a directory.
// This matches the layout the tool has always used, so existing data files
// keep working.
type FileBackend struct {
	dir string
}

// NewFileBackend creates the data directory if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(name string) string {
	return filepath.Join(b.dir, name+".json")
}

func (b *FileBackend) Load(name string) ([]byte, error) {
	data, err := os.ReadFile(b.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read series %s: %w", name, err)
	}
	return data, nil
}

func (b *FileBackend) Save(name string, data []byte) error {
	if err := os.WriteFile(b.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write series %s: %w", name, err)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }
