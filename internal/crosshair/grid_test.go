package crosshair

import (
	"errors"
	"image/color"
	"testing"
)

// createPatternGrid fills a grid with a position-dependent pattern so copies
// and moves can be checked cell by cell.
func createPatternGrid(t *testing.T, size int) *Grid {
	t.Helper()

	g, err := NewSize(size)
	if err != nil {
		t.Fatalf("NewSize(%d) failed: %v", size, err)
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			g.Set(x, y, Pixel{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: uint8(1 + (x+y)%255)})
		}
	}
	return g
}

func TestNew(t *testing.T) {
	g := New()

	if g.Size() != DefaultSize {
		t.Fatalf("Size: got %d, want %d", g.Size(), DefaultSize)
	}
	if g.Opaque() != 0 {
		t.Errorf("new grid should be fully transparent, %d opaque pixels", g.Opaque())
	}
}

func TestNewSize_Invalid(t *testing.T) {
	for _, size := range []int{0, -1, -64, MaxSize + 1, 1 << 32} {
		g, err := NewSize(size)
		if err == nil {
			t.Errorf("NewSize(%d) should fail", size)
		}
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewSize(%d) error should wrap ErrInvalidSize, got %v", size, err)
		}
		if g != nil {
			t.Errorf("NewSize(%d) should not return a grid", size)
		}
	}
}

func TestGrid_SetAndAt(t *testing.T) {
	g, _ := NewSize(8)
	p := Pixel{R: 1, G: 2, B: 3, A: 4}

	g.Set(3, 5, p)

	if got := g.At(3, 5); got != p {
		t.Errorf("At(3,5): got %v, want %v", got, p)
	}
	if got := g.At(5, 3); got != Transparent {
		t.Errorf("At(5,3) should be untouched, got %v", got)
	}
}

func TestGrid_OutOfBounds(t *testing.T) {
	g := createPatternGrid(t, 8)
	before := g.Clone()

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 4},
		{"negative y", 4, -1},
		{"x too large", 8, 4},
		{"y too large", 4, 8},
		{"both too large", 8, 8},
		{"far away", 1 << 20, -(1 << 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.At(tt.x, tt.y); got != Transparent {
				t.Errorf("At(%d,%d): got %v, want transparent", tt.x, tt.y, got)
			}
			g.Set(tt.x, tt.y, White)
			if !g.Equal(before) {
				t.Errorf("Set(%d,%d) modified the grid", tt.x, tt.y)
			}
		})
	}
}

func TestGrid_Clear(t *testing.T) {
	g := createPatternGrid(t, 6)
	g.Clear()

	if g.Size() != 6 {
		t.Errorf("Clear should keep the size, got %d", g.Size())
	}
	if g.Opaque() != 0 {
		t.Errorf("Clear left %d opaque pixels", g.Opaque())
	}
}

func TestGrid_ResetToDefault(t *testing.T) {
	g := createPatternGrid(t, DefaultSize)
	g.ResetToDefault()

	tests := []struct {
		name string
		x, y int
		want Pixel
	}{
		{"center gap", 32, 32, Transparent},
		{"gap corner", 30, 30, Transparent},
		{"gap edge on bar", 34, 31, Transparent},
		{"vertical bar top", 32, 22, White},
		{"vertical bar left column", 31, 22, White},
		{"vertical bar bottom", 32, 42, White},
		{"horizontal bar left", 22, 31, White},
		{"horizontal bar right", 42, 32, White},
		{"just outside gap", 35, 32, White},
		{"beyond bar end", 32, 43, Transparent},
		{"bar is two thick", 40, 33, Transparent},
		{"corner", 0, 0, Transparent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.At(tt.x, tt.y); got != tt.want {
				t.Errorf("At(%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	// Two 21x2 bars sharing a 2x2 overlap, minus the 5x2 slice of each bar
	// inside the gap (the shared 2x2 again counted once).
	want := 21*2*2 - 2*2 - (5*2*2 - 2*2)
	if got := g.Opaque(); got != want {
		t.Errorf("Opaque: got %d, want %d", got, want)
	}
}

func TestGrid_ResetToDefault_SmallGrid(t *testing.T) {
	g, _ := NewSize(4)
	g.ResetToDefault()

	// Everything lies inside the gap or is clipped, so nothing is drawn.
	if g.Opaque() != 0 {
		t.Errorf("4x4 default pattern should be empty, got %d opaque", g.Opaque())
	}
}

func TestGrid_Resize(t *testing.T) {
	tests := []struct {
		name    string
		oldSize int
		newSize int
	}{
		{"grow", 8, 12},
		{"shrink", 12, 5},
		{"same", 7, 7},
		{"to one", 6, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := createPatternGrid(t, tt.oldSize)
			before := g.Clone()

			if !g.Resize(tt.newSize) {
				t.Fatalf("Resize(%d) returned false", tt.newSize)
			}
			if g.Size() != tt.newSize {
				t.Fatalf("Size: got %d, want %d", g.Size(), tt.newSize)
			}

			keep := min(tt.oldSize, tt.newSize)
			for y := 0; y < tt.newSize; y++ {
				for x := 0; x < tt.newSize; x++ {
					want := Transparent
					if x < keep && y < keep {
						want = before.At(x, y)
					}
					if got := g.At(x, y); got != want {
						t.Fatalf("At(%d,%d): got %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestGrid_Resize_Invalid(t *testing.T) {
	g := createPatternGrid(t, 5)
	before := g.Clone()

	for _, size := range []int{0, -3, MaxSize + 1, 1 << 32} {
		if g.Resize(size) {
			t.Errorf("Resize(%d) should return false", size)
		}
	}
	if !g.Equal(before) {
		t.Error("invalid Resize modified the grid")
	}
}

func TestGrid_ResizeToMaxSize(t *testing.T) {
	g := createPatternGrid(t, 3)
	if !g.Resize(MaxSize) {
		t.Fatalf("Resize(%d) returned false", MaxSize)
	}
	if g.Size() != MaxSize {
		t.Errorf("Size: got %d, want %d", g.Size(), MaxSize)
	}
	if _, err := NewSize(MaxSize); err != nil {
		t.Errorf("NewSize(%d): %v", MaxSize, err)
	}
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g := createPatternGrid(t, 4)
	c := g.Clone()
	c.Set(0, 0, White)

	if g.At(0, 0) == White {
		t.Error("modifying the clone changed the original")
	}
	if g.Equal(c) {
		t.Error("grids should differ after modifying the clone")
	}
}

func TestGrid_CopyFrom(t *testing.T) {
	src := createPatternGrid(t, 9)
	dst := New()
	dst.CopyFrom(src)

	if !dst.Equal(src) {
		t.Fatal("CopyFrom result differs from source")
	}
	src.Set(1, 1, White)
	if dst.At(1, 1) == White {
		t.Error("CopyFrom should not share the buffer")
	}
}

func TestGrid_Image(t *testing.T) {
	g, _ := NewSize(3)
	p := Pixel{R: 200, G: 100, B: 50, A: 128}
	g.Set(2, 1, p)

	img := g.Image()

	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 3 {
		t.Fatalf("bounds: got %v", img.Bounds())
	}
	got := img.NRGBAAt(2, 1)
	if got != (color.NRGBA{R: 200, G: 100, B: 50, A: 128}) {
		t.Errorf("NRGBAAt(2,1): got %v", got)
	}
	if img.NRGBAAt(0, 0).A != 0 {
		t.Error("untouched cell should be transparent")
	}
}

func TestPixelFromColor(t *testing.T) {
	p := Pixel{R: 10, G: 20, B: 30, A: 255}
	if got := PixelFromColor(p); got != p {
		t.Errorf("round trip through color.Color: got %v, want %v", got, p)
	}

	if got := PixelFromColor(color.RGBA{R: 255, A: 255}); got != (Pixel{R: 255, A: 255}) {
		t.Errorf("opaque red: got %v", got)
	}
}
