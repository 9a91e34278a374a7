// Package storage gives each mod its own JSON settings directory under the
// shared Blockforge data root. Values are encoded through the codec package,
// so engine types inside settings structs come out in their canonical shape.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/blockforge/modkit/codec"
	"github.com/blockforge/modkit/mod"
)

type dirConfig struct {
	DataDir string `env:"MODKIT_DATA_DIR"`
}

// DataRoot resolves the directory holding every mod's storage folder.
// MODKIT_DATA_DIR overrides the default under the user config directory.
func DataRoot() (string, error) {
	var cfg dirConfig
	if err := env.Parse(&cfg); err != nil {
		return "", fmt.Errorf("storage: reading environment: %w", err)
	}
	if cfg.DataDir != "" {
		return cfg.DataDir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("storage: resolving config dir: %w", err)
	}
	return filepath.Join(base, "blockforge", "mods"), nil
}

// Store reads and writes one mod's JSON files.
type Store struct {
	dir string
	set *codec.Set
}

// Option adjusts a Store.
type Option func(*Store)

// WithSet encodes through a private converter set instead of codec.Default.
// Mods that register their own converters use this to keep them out of every
// other mod's files.
func WithSet(set *codec.Set) Option {
	return func(s *Store) {
		if set != nil {
			s.set = set
		}
	}
}

// NewStore returns the store for a mod, rooted at DataRoot()/<id>.
func NewStore(info mod.Info, opts ...Option) (*Store, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	root, err := DataRoot()
	if err != nil {
		return nil, err
	}
	s := &Store{dir: filepath.Join(root, info.ID), set: codec.Default}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string { return s.dir }

// Path returns the file a name is stored at.
func (s *Store) Path(name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name+".json"), nil
}

// SaveJSON writes v as indented JSON, creating the mod's folder on first
// use. The file is replaced in place; a crash mid-write can leave a partial
// file.
func (s *Store) SaveJSON(name string, v any) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("storage: creating %s: %w", s.dir, err)
	}
	data, err := s.set.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encoding %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("storage: writing %s: %w", path, err)
	}
	return nil
}

// LoadJSON reads name into v. Missing files return an error wrapping
// fs.ErrNotExist so callers can fall back to defaults.
func (s *Store) LoadJSON(name string, v any) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("storage: reading %s: %w", path, err)
	}
	if err := s.set.Unmarshal(data, v); err != nil {
		return fmt.Errorf("storage: decoding %s: %w", path, err)
	}
	return nil
}

// Load returns the stored value for name, or the zero value and an error.
func Load[T any](s *Store, name string) (T, error) {
	var out T
	err := s.LoadJSON(name, &out)
	return out, err
}

// Exists reports whether name has been saved.
func (s *Store) Exists(name string) bool {
	path, err := s.Path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Delete removes a stored file. Deleting a name that was never saved is not
// an error.
func (s *Store) Delete(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: deleting %s: %w", path, err)
	}
	return nil
}

func validName(name string) error {
	if name == "" {
		return errors.New("storage: name is empty")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("storage: name %q must be a bare file name", name)
	}
	return nil
}
