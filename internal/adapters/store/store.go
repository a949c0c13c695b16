// Package store persists the grading policy snapshot as a small JSON file.
// Only the three editable fields are written; the window is always
// recomputed on load.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/notafinal/notafinal/internal/domain/policy"
)

const snapshotFileMode = 0o644

// Snapshot is the on-disk shape of a policy.
type Snapshot struct {
	StartTime  string  `json:"start_time"`
	CutoffTime string  `json:"cutoff_time"`
	MaxPercent float64 `json:"max_percent"`
}

// FileStore reads and writes policy snapshots at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore creates a store for the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and validates the persisted snapshot. A missing file returns
// ErrNotFound so callers can fall back to defaults; a corrupt or invalid
// snapshot returns ErrLoadSnapshot.
func (s *FileStore) Load() (policy.Policy, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return policy.Policy{}, ErrNotFound
		}
		return policy.Policy{}, fmt.Errorf("%w: %w", ErrLoadSnapshot, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return policy.Policy{}, fmt.Errorf("%w: %w", ErrLoadSnapshot, err)
	}

	pol, err := policy.New(snap.StartTime, snap.CutoffTime, snap.MaxPercent)
	if err != nil {
		return policy.Policy{}, fmt.Errorf("%w: %w", ErrLoadSnapshot, err)
	}
	return pol, nil
}

// Save writes the three editable fields of pol. The write goes through a
// temp file and rename so a watcher or a crashed process never observes a
// half-written snapshot.
func (s *FileStore) Save(pol policy.Policy) error {
	snap := Snapshot{
		StartTime:  pol.Start.String(),
		CutoffTime: pol.Cutoff.String(),
		MaxPercent: pol.MaxPercent,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveSnapshot, err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveSnapshot, err)
	}
	if err := os.WriteFile(tmp, data, snapshotFileMode); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveSnapshot, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveSnapshot, err)
	}
	return nil
}
