// Package auth covers both ends of the API's bearer token: the CLI keeps its
// credentials in a Store, and the server checks incoming Authorization
// headers with Check.
package auth

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// EnvToken overrides the stored credentials.
	EnvToken = "HEROES_TOKEN"

	credentialsFile = "credentials.json"
	scheme          = "bearer "
)

var (
	// ErrNoToken is returned when a request carries no bearer token.
	ErrNoToken = errors.New("missing bearer token")
	// ErrBadToken is returned when the bearer token does not match.
	ErrBadToken = errors.New("invalid bearer token")
)

// Credentials is what the CLI sends as "Authorization: Bearer <Token>".
type Credentials struct {
	Token     string     `json:"token"`
	Source    string     `json:"-"` // "env" or the file it was read from
	SavedAt   time.Time  `json:"saved_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the credentials have a known expiry in the past.
func (c *Credentials) Expired(now time.Time) bool {
	return c != nil && c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// FromEnv reports whether the token comes from HEROES_TOKEN.
func (c *Credentials) FromEnv() bool { return c != nil && c.Source == "env" }

// Store persists credentials in a single owner-only file.
type Store struct {
	path string
}

// NewStore keeps credentials under dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, credentialsFile)}
}

// DefaultStore keeps credentials under ~/.heroes.
func DefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("home: %w", err)
	}
	return NewStore(filepath.Join(home, ".heroes")), nil
}

// Path is the credentials file.
func (s *Store) Path() string { return s.path }

// Load returns the env token, else the stored one. Not logged in is (nil, nil).
func (s *Store) Load() (*Credentials, error) {
	if tok := TrimScheme(os.Getenv(EnvToken)); tok != "" {
		return &Credentials{Token: tok, Source: "env"}, nil
	}

	b, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", s.path, err)
	}
	c.Token = TrimScheme(c.Token)
	if c.Token == "" {
		return nil, nil
	}
	c.Source = s.path
	return &c, nil
}

// Save writes token, with or without a "Bearer " prefix.
func (s *Store) Save(token string, expires *time.Time) error {
	token = TrimScheme(token)
	if token == "" {
		return ErrNoToken
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(Credentials{Token: token, SavedAt: time.Now().UTC(), ExpiresAt: expires}, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Clear removes the stored credentials. Nothing stored is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// TrimScheme strips surrounding space and a leading "Bearer " of any case.
func TrimScheme(s string) string {
	s = strings.TrimSpace(s)
	if f := strings.Fields(s); len(f) > 0 && strings.EqualFold(f[0], strings.TrimSpace(scheme)) {
		s = strings.TrimSpace(s[len(f[0]):])
	}
	return s
}

// Check validates an Authorization header value against want.
func Check(header, want string) error {
	header = strings.TrimSpace(header)
	if len(header) < len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return ErrNoToken
	}
	got := strings.TrimSpace(header[len(scheme):])
	if got == "" {
		return ErrNoToken
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		return ErrBadToken
	}
	return nil
}
