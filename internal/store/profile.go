package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/facupepi/serviapp-cli/internal/api"
)

const profileFile = "user.json"

// ProfileStore caches the user profile locally. It is a convenience cache,
// never a source of truth: corrupt or missing data reads back as "no user".
type ProfileStore struct {
	dir string
}

// NewProfileStore creates a profile store rooted at dir.
func NewProfileStore(dir string) *ProfileStore {
	return &ProfileStore{dir: dir}
}

func (s *ProfileStore) path() string {
	return filepath.Join(s.dir, profileFile)
}

// Save writes the profile cache.
func (s *ProfileStore) Save(user *api.User) error {
	if user == nil {
		return s.Delete()
	}

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0o644)
}

// Load returns the cached profile, or (nil, false) when absent or corrupt.
func (s *ProfileStore) Load() (*api.User, bool) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return nil, false
	}

	var user api.User
	if err := json.Unmarshal(data, &user); err != nil || user.ID == "" {
		return nil, false
	}
	return &user, true
}

// Delete removes the cached profile. Missing file is not an error.
func (s *ProfileStore) Delete() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
