// Package state persists the most recently activated view key.
//
// The store is a single plain-text file holding exactly one key, ASCII, no
// trailing newline. It exists so rotate mode knows where the cycle stands
// between invocations; nothing else reads it. There is no history, only
// the latest value.
package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store reads and writes the last-selection file.
type Store struct {
	path string
}

// New returns a Store backed by the file at path. The file need not exist.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load returns the stored key, or "" when the file does not exist. An
// absent store is normal (first run); any other read failure is an error.
func (s *Store) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read state %s: %w", s.path, err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Save replaces the stored key. The value is written to a sibling temp file
// and renamed into place, so a concurrent Load never sees a torn value.
func (s *Store) Save(key string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("state dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(key), 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state %s: %w", s.path, err)
	}
	return nil
}
