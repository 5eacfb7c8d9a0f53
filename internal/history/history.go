// Package history remembers the scratch repositories the generator left on disk.
package history

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/samber/lo"
)

const fileName = "jjdemo-history.json"

// Entry is one kept scratch repository
type Entry struct {
	RunID     string    `json:"run_id"`
	Attempt   int       `json:"attempt"`
	Dir       string    `json:"dir"`
	ChangeIDs []string  `json:"change_ids"`
	Stopped   bool      `json:"stopped"`
	CreatedAt time.Time `json:"created_at"`
}

// Store reads and writes the history file
type Store struct {
	mu   sync.Mutex
	path string
}

// DefaultPath returns the history file location in the user config dir
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, fileName), nil
}

// NewStore creates a Store for the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the history file path
func (s *Store) Path() string {
	return s.path
}

// Load returns the entries whose directory still exists, dropping the rest
// from the file
func (s *Store) Load() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}

	valid := lo.Filter(entries, func(e Entry, _ int) bool {
		info, err := os.Stat(e.Dir)
		return err == nil && info.IsDir()
	})

	// Rewrite file if we pruned anything
	if len(valid) != len(entries) {
		if err := s.write(valid); err != nil {
			return nil, err
		}
	}
	return valid, nil
}

// Add appends an entry
func (s *Store) Add(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	return s.write(append(entries, e))
}

// Prune removes the directories of all entries and clears the history.
// It returns the directories that were removed.
func (s *Store) Prune() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}

	var (
		removed []string
		kept    []Entry
		errs    []error
	)
	for _, e := range entries {
		if err := os.RemoveAll(e.Dir); err != nil {
			errs = append(errs, err)
			kept = append(kept, e)
			continue
		}
		removed = append(removed, e.Dir)
	}

	if err := s.write(kept); err != nil {
		errs = append(errs, err)
	}
	return removed, errors.Join(errs...)
}

func (s *Store) read() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) write(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
