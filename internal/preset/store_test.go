package preset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/ironsheep/clean-crosshair/internal/crosshair"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "Presets"), nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return s
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Default", "Default"},
		{"a/b", "a_b"},
		{`C:\dot`, "C__dot"},
		{`what?"<>|*`, "what______"},
		{"dot small", "dot small"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	s, err := NewStore(dir, nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
	if s.Dir() != dir {
		t.Errorf("Dir: got %q, want %q", s.Dir(), dir)
	}
}

func TestStore_SaveLoad(t *testing.T) {
	s := newTestStore(t)

	g := crosshair.New()
	g.ResetToDefault()
	g.Set(0, 0, crosshair.Pixel{R: 1, G: 2, B: 3, A: 4})

	if err := s.Save("Sniper", g); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !s.Exists("Sniper") {
		t.Error("Exists should report the saved preset")
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), "Sniper.crosshair"))
	if err != nil {
		t.Fatalf("preset file missing: %v", err)
	}
	if string(data) != g.Serialize() {
		t.Error("preset file should hold exactly the serialized grid")
	}

	got := crosshair.New()
	if err := s.Load("Sniper", got); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !got.Equal(g) {
		t.Error("loaded grid differs from saved grid")
	}
}

func TestStore_SaveSanitizes(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save("a/b:c", crosshair.New()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), "a_b_c.crosshair")); err != nil {
		t.Errorf("sanitized file missing: %v", err)
	}
	if !s.Exists("a/b:c") {
		t.Error("Exists should sanitize the same way as Save")
	}
}

func TestStore_SaveEmptyName(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"", "   "} {
		if err := s.Save(name, crosshair.New()); !errors.Is(err, ErrEmptyName) {
			t.Errorf("Save(%q): got %v, want ErrEmptyName", name, err)
		}
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := newTestStore(t)

	first := crosshair.New()
	first.ResetToDefault()
	if err := s.Save("p", first); err != nil {
		t.Fatal(err)
	}

	second, _ := crosshair.NewSize(4)
	if err := s.Save("p", second); err != nil {
		t.Fatal(err)
	}

	got := crosshair.New()
	if err := s.Load("p", got); err != nil {
		t.Fatal(err)
	}
	if got.Size() != 4 {
		t.Errorf("Size: got %d, want 4", got.Size())
	}

	names, _ := s.Names()
	if len(names) != 1 {
		t.Errorf("overwrite left %d presets: %v", len(names), names)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	s := newTestStore(t)

	g := crosshair.New()
	g.ResetToDefault()
	before := g.Clone()

	err := s.Load("nope", g)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if !g.Equal(before) {
		t.Error("failed load changed the grid")
	}
}

func TestStore_LoadMalformed(t *testing.T) {
	s := newTestStore(t)

	path := filepath.Join(s.Dir(), "broken.crosshair")
	if err := os.WriteFile(path, []byte("2,0,0,0,0,1,1,1,256"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := crosshair.New()
	g.ResetToDefault()
	before := g.Clone()

	err := s.Load("broken", g)
	if !errors.Is(err, crosshair.ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
	if !g.Equal(before) {
		t.Error("malformed preset changed the grid")
	}
}

func TestStore_LoadReadsFirstLineOnly(t *testing.T) {
	s := newTestStore(t)

	content := "1,9,8,7,6\n2,0,0,0,0\n"
	if err := os.WriteFile(filepath.Join(s.Dir(), "multi.crosshair"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	g := crosshair.New()
	if err := s.Load("multi", g); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if g.Size() != 1 || g.At(0, 0) != (crosshair.Pixel{R: 9, G: 8, B: 7, A: 6}) {
		t.Errorf("unexpected grid: %s", g.Serialize())
	}
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save("gone", crosshair.New()); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("gone"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if s.Exists("gone") {
		t.Error("preset still exists after delete")
	}
	if err := s.Delete("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
}

func TestStore_Names(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"zeta", "Alpha", "mid"} {
		if err := s.Save(name, crosshair.New()); err != nil {
			t.Fatal(err)
		}
	}
	// Files that are not presets are skipped.
	os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(s.Dir(), ".preset-123"), []byte("x"), 0o644)
	os.Mkdir(filepath.Join(s.Dir(), "dir.crosshair"), 0o755)

	got, err := s.Names()
	if err != nil {
		t.Fatalf("Names failed: %v", err)
	}
	want := []string{"Alpha", "mid", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names: got %v, want %v", got, want)
	}
}

func TestStore_NamesEmpty(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Names()
	if err != nil {
		t.Fatalf("Names failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Names: got %v, want none", got)
	}
}

func TestNameOf(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"/x/Presets/Dot.crosshair", "Dot", true},
		{"Dot.crosshair", "Dot", true},
		{"/x/Presets/Dot.txt", "", false},
		{"/x/Presets/.preset-42", "", false},
		{"/x/Presets/.crosshair", "", false},
	}

	for _, tt := range tests {
		got, ok := NameOf(tt.path)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NameOf(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStore_Watch(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func(name string) { changed <- name })
	}()

	// Give the watcher time to register before writing.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := s.Save("Live", crosshair.New()); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		select {
		case name := <-changed:
			if name != "Live" {
				t.Errorf("watched name: got %q, want Live", name)
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch returned %v", err)
			}
			return
		case <-ticker.C:
		case <-deadline:
			t.Fatal("no change notification received")
		}
	}
}

func TestStore_WatchStopsOnCancel(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Watch(ctx, func(string) {}); err != nil {
		t.Errorf("Watch on a cancelled context: got %v", err)
	}
}
