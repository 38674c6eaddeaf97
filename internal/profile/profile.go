// Package profile remembers the last player name and level label between
// sessions.
package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/invaders/internal/config"
)

const (
	appDir   = "invaders"
	fileName = "profile.yaml"
)

// Profile is the remembered menu input.
type Profile struct {
	Name  string `yaml:"name"`
	Level string `yaml:"level"`
}

// Store reads and writes a Profile as a YAML file.
type Store struct {
	path string
}

// DefaultPath returns INVADERS_PROFILE if set, otherwise
// <user config dir>/invaders/profile.yaml.
func DefaultPath() (string, error) {
	if p := config.GetEnv("INVADERS_PROFILE", ""); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("profile: locate config dir: %w", err)
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the profile. A missing file yields an empty profile.
func (s *Store) Load() (Profile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Profile{}, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("profile: read %s: %w", s.path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("profile: unmarshal %s: %w", s.path, err)
	}
	return p, nil
}

// Save writes the profile, creating the parent directory if needed. The
// file is replaced atomically.
func (s *Store) Save(p Profile) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("profile: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("profile: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, fileName+".*")
	if err != nil {
		return fmt.Errorf("profile: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("profile: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("profile: close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("profile: replace %s: %w", s.path, err)
	}
	return nil
}
