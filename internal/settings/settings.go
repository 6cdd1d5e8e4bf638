// Package settings reads and writes the application settings file.
//
// The file is plain text with one key=value pair per line:
//
//	StartWithWindows=false
//	StartMinimized=false
//	CrosshairScale=1
//	LastLoadedPreset=Default
//
// Unknown keys are ignored and missing keys keep their defaults. Settings is a
// plain value: load it once at startup, change it in memory and save it
// explicitly.
package settings

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Limits of the crosshair scale slider.
const (
	MinScale = 0.5
	MaxScale = 5.0
)

// Keys used in the settings file.
const (
	KeyStartWithWindows = "StartWithWindows"
	KeyStartMinimized   = "StartMinimized"
	KeyCrosshairScale   = "CrosshairScale"
	KeyLastLoadedPreset = "LastLoadedPreset"
)

// Settings holds the persisted application options.
type Settings struct {
	StartWithWindows bool    `json:"start_with_windows"`
	StartMinimized   bool    `json:"start_minimized"`
	CrosshairScale   float64 `json:"crosshair_scale"`
	LastLoadedPreset string  `json:"last_loaded_preset"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		CrosshairScale:   1.0,
		LastLoadedPreset: "Default",
	}
}

// SetScale sets CrosshairScale clamped to [MinScale, MaxScale].
func (s *Settings) SetScale(v float64) {
	s.CrosshairScale = max(MinScale, min(MaxScale, v))
}

// Set assigns a single key from its textual value, as read from the file.
// It reports false for unknown keys.
func (s *Settings) Set(key, value string) bool {
	switch key {
	case KeyStartWithWindows:
		s.StartWithWindows = value == "true"
	case KeyStartMinimized:
		s.StartMinimized = value == "true"
	case KeyCrosshairScale:
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			v = 1.0
		}
		s.CrosshairScale = v
	case KeyLastLoadedPreset:
		s.LastLoadedPreset = value
	default:
		return false
	}
	return true
}

// Parse reads settings from r on top of the defaults.
func Parse(r io.Reader) (Settings, error) {
	s := Default()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		s.Set(key, value)
	}
	if err := scanner.Err(); err != nil {
		return Default(), fmt.Errorf("failed to read settings: %w", err)
	}
	return s, nil
}

// Load reads the settings file at path. A missing file yields the defaults
// and no error.
func Load(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to open settings: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// WriteTo writes the settings in file format.
func (s Settings) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s=%t\n", KeyStartWithWindows, s.StartWithWindows)
	fmt.Fprintf(&b, "%s=%t\n", KeyStartMinimized, s.StartMinimized)
	fmt.Fprintf(&b, "%s=%s\n", KeyCrosshairScale, strconv.FormatFloat(s.CrosshairScale, 'g', -1, 64))
	fmt.Fprintf(&b, "%s=%s\n", KeyLastLoadedPreset, s.LastLoadedPreset)

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Save writes the settings to path, creating the parent directory.
func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	if _, err := s.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close settings file: %w", err)
	}
	return nil
}
