// Package preset stores named crosshair grids as files.
//
// Each preset is one file named after the sanitized preset name with the
// ".crosshair" extension. The file holds a single line: the grid's serialized
// form. There is no header, checksum or version field.
package preset

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ironsheep/clean-crosshair/internal/crosshair"
	"github.com/ironsheep/clean-crosshair/internal/logging"
)

// Ext is the file extension of preset files.
const Ext = ".crosshair"

var (
	// ErrNotFound is returned when no preset file exists for a name.
	ErrNotFound = errors.New("preset not found")

	// ErrEmptyName is returned for blank preset names.
	ErrEmptyName = errors.New("preset name is empty")
)

// forbidden lists characters that may not appear in a preset filename.
const forbidden = `\/:*?"<>|`

// SanitizeName replaces every character that is not allowed in a filename
// with '_'.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbidden, r) {
			return '_'
		}
		return r
	}, name)
}

// Store manages the preset files of one directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore returns a store rooted at dir, creating the directory if needed.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create preset directory: %w", err)
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{dir: dir, logger: logger.With("component", "preset")}, nil
}

// Dir returns the directory holding the preset files.
func (s *Store) Dir() string { return s.dir }

// Path returns the file path used for the named preset.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, SanitizeName(name)+Ext)
}

// Exists reports whether a preset file exists for name.
func (s *Store) Exists(name string) bool {
	info, err := os.Stat(s.Path(name))
	return err == nil && info.Mode().IsRegular()
}

// Save writes grid under name, replacing any existing preset.
//
// The data is written to a temporary file in the same directory and renamed
// into place so readers never observe a partial preset.
func (s *Store) Save(name string, grid *crosshair.Grid) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}

	path := s.Path(name)
	tmp, err := os.CreateTemp(s.dir, ".preset-*")
	if err != nil {
		return fmt.Errorf("failed to create preset file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(grid.Serialize()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write preset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close preset file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to store preset: %w", err)
	}

	s.logger.Debug("preset saved", "name", name, "path", path, "size", grid.Size())
	return nil
}

// Load reads the named preset into grid.
//
// Returns ErrNotFound if the preset does not exist and a wrapped
// crosshair.ErrMalformed if its content cannot be decoded. In both cases
// grid is left unchanged.
func (s *Store) Load(name string, grid *crosshair.Grid) error {
	path := s.Path(name)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("failed to open preset: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("failed to read preset %s: %w", name, err)
	}

	if err := grid.Deserialize(line); err != nil {
		s.logger.Warn("preset rejected", "name", name, "error", err)
		return fmt.Errorf("failed to load preset %s: %w", name, err)
	}

	s.logger.Debug("preset loaded", "name", name, "size", grid.Size())
	return nil
}

// Delete removes the named preset.
func (s *Store) Delete(name string) error {
	if err := os.Remove(s.Path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	s.logger.Debug("preset deleted", "name", name)
	return nil
}

// Names returns the names of all presets in sorted order.
func (s *Store) Names() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if name, ok := NameOf(e.Name()); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// NameOf returns the preset name for a preset file path, or false if path is
// not a preset file.
func NameOf(path string) (string, bool) {
	base := filepath.Base(path)
	if filepath.Ext(base) != Ext || strings.HasPrefix(base, ".") {
		return "", false
	}
	return strings.TrimSuffix(base, Ext), true
}
