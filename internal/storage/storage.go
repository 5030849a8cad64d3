// Package storage persists the deadline settings blob. A Backend only knows
// how to load and save opaque bytes; Store layers the defaults merge and the
// default-category repair on top.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"countdown/internal/deadline"
	"countdown/internal/logger"
)

type Backend interface {
	// LoadBlob returns nil, nil when nothing has been saved yet.
	LoadBlob() ([]byte, error)
	SaveBlob(data []byte) error
	Close() error
}

type Store struct {
	backend Backend
}

// Open picks the JSON backend for .json paths and SQLite for everything
// else.
func Open(path string) (*Store, error) {
	var (
		b   Backend
		err error
	)
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		b, err = OpenJSON(path)
	} else {
		b, err = OpenSQLite(path)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("opened store", "path", path, "backend", fmt.Sprintf("%T", b))
	return New(b), nil
}

func New(b Backend) *Store {
	return &Store{backend: b}
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// Load merges the stored blob over the defaults. When the loaded data had to
// be repaired it is written back before returning.
func (s *Store) Load() (*deadline.Settings, error) {
	settings := deadline.Defaults()
	data, err := s.backend.LoadBlob()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("parse settings: %w", err)
		}
	}
	if settings.Normalize() {
		logger.Info("repaired settings on load", "categories", len(settings.Categories))
		if err := s.Save(settings); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

func (s *Store) Save(settings *deadline.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	if err := s.backend.SaveBlob(data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	logger.Debug("saved settings", "deadlines", len(settings.Deadlines), "categories", len(settings.Categories))
	return nil
}
