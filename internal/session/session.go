// Package session owns the live crosshair and everything attached to it.
//
// A Session holds the single canonical *crosshair.Grid, the editor drawing on
// it, the preset store and the settings value. Other components borrow the
// grid through Grid() and never replace it: loading a preset overwrites the
// grid in place so every borrower keeps seeing the live crosshair.
//
// A Session is not safe for concurrent use. Callers that react to outside
// events, such as preset file changes, must hand those events to the
// goroutine that owns the session.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ironsheep/clean-crosshair/internal/crosshair"
	"github.com/ironsheep/clean-crosshair/internal/editor"
	"github.com/ironsheep/clean-crosshair/internal/logging"
	"github.com/ironsheep/clean-crosshair/internal/preset"
	"github.com/ironsheep/clean-crosshair/internal/settings"
)

// DefaultPreset is the name of the preset created on first start.
const DefaultPreset = "Default"

// Layout of the application data directory.
const (
	AppDirName       = "CleanCrosshair"
	PresetDirName    = "Presets"
	SettingsFileName = "settings.cfg"
)

// HomeEnv overrides the application data directory.
const HomeEnv = "CROSSHAIR_HOME"

// Config selects where a session keeps its files.
type Config struct {
	// Dir is the application data directory. Empty means DefaultDir().
	Dir string

	// Logger receives session and store events. Nil discards them.
	Logger *slog.Logger
}

// DefaultDir returns $CROSSHAIR_HOME if set, otherwise CleanCrosshair under
// the user's configuration directory.
func DefaultDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}

// PresetDir returns the directory holding preset files.
func (c Config) PresetDir() string { return filepath.Join(c.Dir, PresetDirName) }

// SettingsPath returns the path of the settings file.
func (c Config) SettingsPath() string { return filepath.Join(c.Dir, SettingsFileName) }

// Session is the running application state.
type Session struct {
	cfg      Config
	logger   *slog.Logger
	grid     *crosshair.Grid
	editor   *editor.Editor
	store    *preset.Store
	settings settings.Settings
	current  string
}

// Open prepares the data directory and restores the previous state.
//
// On first start, when no preset exists, the grid is reset to the default
// plus sign and saved as "Default". Then the preset named by the
// LastLoadedPreset setting is loaded if it exists. A last preset that fails
// to load is logged and skipped; the session still opens.
func Open(cfg Config) (*Session, error) {
	if cfg.Dir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.Dir = dir
	}
	logger := logging.OrNop(cfg.Logger)

	store, err := preset.NewStore(cfg.PresetDir(), logger)
	if err != nil {
		return nil, err
	}

	st, err := settings.Load(cfg.SettingsPath())
	if err != nil {
		logger.Warn("using default settings", "path", cfg.SettingsPath(), "error", err)
		st = settings.Default()
	}

	grid := crosshair.New()
	s := &Session{
		cfg:      cfg,
		logger:   logger.With("component", "session"),
		grid:     grid,
		editor:   editor.New(grid),
		store:    store,
		settings: st,
	}

	names, err := store.Names()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		grid.ResetToDefault()
		if err := store.Save(DefaultPreset, grid); err != nil {
			return nil, fmt.Errorf("failed to create default preset: %w", err)
		}
		s.current = DefaultPreset
		s.logger.Info("created default preset", "dir", store.Dir())
	}

	if last := st.LastLoadedPreset; last != "" && store.Exists(last) {
		if err := s.LoadPreset(last); err != nil {
			s.logger.Warn("could not restore last preset", "name", last, "error", err)
		}
	}

	s.logger.Debug("session opened", "dir", cfg.Dir, "preset", s.current)
	return s, nil
}

// Dir returns the application data directory in use.
func (s *Session) Dir() string { return s.cfg.Dir }

// Grid returns the live grid. The pointer stays valid for the life of the
// session.
func (s *Session) Grid() *crosshair.Grid { return s.grid }

// Editor returns the editor drawing on the live grid.
func (s *Session) Editor() *editor.Editor { return s.editor }

// Store returns the preset store.
func (s *Session) Store() *preset.Store { return s.store }

// Settings returns a copy of the current settings.
func (s *Session) Settings() settings.Settings { return s.settings }

// SetSettings replaces the settings in memory. The scale is clamped to the
// editor's range. Call SaveSettings to persist.
func (s *Session) SetSettings(st settings.Settings) {
	st.SetScale(st.CrosshairScale)
	s.settings = st
}

// Current returns the name of the preset last saved or loaded, as listed by
// Presets, or "" if none.
func (s *Session) Current() string { return s.current }

// Presets returns the sorted preset names.
func (s *Session) Presets() ([]string, error) { return s.store.Names() }

// SavePreset stores the live grid under name and makes it the current
// preset.
func (s *Session) SavePreset(name string) error {
	s.editor.Cancel()
	if err := s.store.Save(name, s.grid); err != nil {
		return err
	}
	s.remember(name)
	return nil
}

// LoadPreset replaces the live grid with the named preset and makes it the
// current preset. On failure the grid and the current preset are unchanged.
func (s *Session) LoadPreset(name string) error {
	s.editor.Cancel()
	if err := s.store.Load(name, s.grid); err != nil {
		return err
	}
	s.remember(name)
	return nil
}

// DeletePreset removes the named preset. When it was the current preset and
// others remain, the first remaining preset in sorted order is loaded.
func (s *Session) DeletePreset(name string) error {
	if err := s.store.Delete(name); err != nil {
		return err
	}
	if preset.SanitizeName(name) != s.current {
		return nil
	}

	s.current = ""
	names, err := s.store.Names()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}
	if err := s.LoadPreset(names[0]); err != nil {
		return fmt.Errorf("failed to load %s after delete: %w", names[0], err)
	}
	return nil
}

// Reload re-reads name from disk if it is the current preset. It reports
// whether the grid was replaced.
func (s *Session) Reload(name string) (bool, error) {
	if preset.SanitizeName(name) != s.current {
		return false, nil
	}
	if err := s.store.Load(name, s.grid); err != nil {
		if errors.Is(err, preset.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	s.logger.Debug("preset reloaded", "name", name)
	return true, nil
}

// SaveSettings writes the settings file.
func (s *Session) SaveSettings() error {
	return s.settings.Save(s.cfg.SettingsPath())
}

// Close persists the settings.
func (s *Session) Close() error {
	if err := s.SaveSettings(); err != nil {
		return fmt.Errorf("failed to save settings on close: %w", err)
	}
	return nil
}

// remember records name as the current and last loaded preset and persists
// the settings. The name is kept in its on-disk form so it matches what
// Presets lists. A settings write failure is logged, not returned: the preset
// operation itself succeeded.
func (s *Session) remember(name string) {
	name = preset.SanitizeName(name)
	s.current = name
	s.settings.LastLoadedPreset = name
	if err := s.SaveSettings(); err != nil {
		s.logger.Warn("failed to record last preset", "name", name, "error", err)
	}
}
