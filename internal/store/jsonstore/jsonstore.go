package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/heroes/internal/model"
)

// JSON-backed storage for the heroes API. Single file, human-readable.
// The API server serializes access; no file locking here.

// FileName is the roster file `heroes serve` uses by default.
const FileName = "heroes.json"

// DefaultPath is FileName in the working directory.
func DefaultPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, FileName), nil
}

// Load reads the heroes at p. A missing file yields (nil, os.ErrNotExist)
// so callers can decide whether to seed.
func Load(p string) ([]model.Hero, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var heroes []model.Hero
	if err := json.Unmarshal(b, &heroes); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if heroes == nil {
		heroes = []model.Hero{}
	}
	return heroes, nil
}

// Save writes heroes to p, replacing it atomically.
func Save(p string, heroes []model.Hero) error {
	if heroes == nil {
		heroes = []model.Hero{}
	}
	b, err := json.MarshalIndent(heroes, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(p); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
