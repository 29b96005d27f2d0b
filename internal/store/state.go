package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const stateFile = "state.json"

// State is the local-storage analogue: favorites plus the login-throttle
// counters, so a block survives restarting the process.
type State struct {
	Favorites     []string  `json:"favorites"`
	LoginAttempts int       `json:"loginAttempts"`
	BlockedUntil  time.Time `json:"blockedUntil"`
}

// StateStore persists State as one small JSON file.
type StateStore struct {
	dir string
}

// NewStateStore creates a state store rooted at dir.
func NewStateStore(dir string) *StateStore {
	return &StateStore{dir: dir}
}

func (s *StateStore) path() string {
	return filepath.Join(s.dir, stateFile)
}

// Save writes the state.
func (s *StateStore) Save(st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0o644)
}

// Load returns the stored state; absent or corrupt data reads back as the
// zero state rather than an error.
func (s *StateStore) Load() State {
	var st State
	data, err := os.ReadFile(s.path())
	if err != nil {
		return st
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}
	}
	return st
}

// Delete removes the stored state. Missing file is not an error.
func (s *StateStore) Delete() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ClearAll removes every persisted artifact: token, cached profile,
// favorites and throttle counters. Used on logout.
func ClearAll(dir string, production bool) error {
	var firstErr error
	if err := NewTokenStore(dir, production).Delete(); err != nil {
		firstErr = err
	}
	if err := NewProfileStore(dir).Delete(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := NewStateStore(dir).Delete(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
