package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSONBackend keeps the settings blob in a plain file.
type JSONBackend struct {
	path string
}

func OpenJSON(path string) (*JSONBackend, error) {
	if path == "" {
		return nil, errors.New("json path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &JSONBackend{path: path}, nil
}

func (b *JSONBackend) Close() error {
	return nil
}

func (b *JSONBackend) LoadBlob() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}
	return data, nil
}

// SaveBlob writes through a temp file and a rename so a crash never leaves a
// half-written blob behind.
func (b *JSONBackend) SaveBlob(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}
