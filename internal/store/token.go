// Package store holds the client-side persistence: the bearer token, the
// cached user profile and the small local state the session needs across
// runs (favorites, login throttling). Files live under one state directory
// and are cleared together on logout.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenFile = "token.json"
	// TokenTTL mirrors the 7-day cookie the web client sets.
	TokenTTL = 7 * 24 * time.Hour
)

// ErrEmptyToken is returned when Save is given nothing worth storing. The
// literal "undefined" guards against a serializer handing us the string
// rendering of a missing value.
var ErrEmptyToken = errors.New("store: refusing to save empty token")

// TokenStore persists the bearer token. In production the file is written
// 0600; in development 0644, the same strict/relaxed split the web client
// applies to its cookie attributes.
type TokenStore struct {
	dir        string
	production bool
}

// NewTokenStore creates a token store rooted at dir.
func NewTokenStore(dir string, production bool) *TokenStore {
	return &TokenStore{dir: dir, production: production}
}

type tokenRecord struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *TokenStore) path() string {
	return filepath.Join(s.dir, tokenFile)
}

func (s *TokenStore) mode() os.FileMode {
	if s.production {
		return 0o600
	}
	return 0o644
}

// Save stores the token with a fresh expiry record.
func (s *TokenStore) Save(token string) error {
	if token == "" || token == "undefined" {
		return ErrEmptyToken
	}

	rec := tokenRecord{Token: token, ExpiresAt: time.Now().Add(TokenTTL)}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, s.mode())
}

// Load returns the stored token, or ("", false) when absent or corrupt.
func (s *TokenStore) Load() (string, bool) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return "", false
	}

	var rec tokenRecord
	if err := json.Unmarshal(data, &rec); err != nil || rec.Token == "" {
		return "", false
	}
	return rec.Token, true
}

// Delete removes the stored token. Missing file is not an error.
func (s *TokenStore) Delete() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// HasValid reports whether a non-expired token is stored. For JWTs the exp
// claim decides (parsed without signature verification; the backend stays
// authoritative). Opaque tokens fall back to the stored expiry record.
func (s *TokenStore) HasValid() bool {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return false
	}

	var rec tokenRecord
	if err := json.Unmarshal(data, &rec); err != nil || rec.Token == "" {
		return false
	}

	if exp, ok := jwtExpiry(rec.Token); ok {
		return time.Now().Before(exp)
	}
	return time.Now().Before(rec.ExpiresAt)
}

// jwtExpiry extracts the exp claim from a JWT without verifying it.
func jwtExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
