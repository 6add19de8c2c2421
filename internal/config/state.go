package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// State is the client-side state that survives between invocations but is
// not server-authoritative. Read at init, written on explicit save.
type State struct {
	// LastExportAt is when an export was last written.
	LastExportAt time.Time `json:"last_export_at,omitempty"`
}

// DefaultStatePath returns ~/.config/casebook/state.json.
func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "casebook", "state.json"), nil
}

// LoadState reads the state file. A missing file yields zero state, not
// an error.
func LoadState(path string) (*State, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	var s State
	if err := json.Unmarshal(content, &s); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the state file with owner-only permissions.
func (s *State) Save(path string) error {
	content, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// DaysSinceExport returns whole days since the last export. ok is false
// when no export has been recorded.
func (s *State) DaysSinceExport(now time.Time) (int, bool) {
	if s.LastExportAt.IsZero() {
		return 0, false
	}
	return int(now.Sub(s.LastExportAt).Hours() / 24), true
}
