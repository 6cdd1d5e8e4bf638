package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/ironsheep/clean-crosshair/internal/crosshair"
	"github.com/ironsheep/clean-crosshair/internal/editor"
)

var (
	opaqueRed   = color.NRGBA{R: 255, A: 255}
	opaqueBlack = color.NRGBA{A: 255}
)

func filled(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestSnapshot(t *testing.T) {
	g := crosshair.New()
	g.ResetToDefault()

	img := Snapshot(g, 2)

	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Fatalf("bounds: got %v, want 128x128", b)
	}
	if got := img.NRGBAAt(32*2+1, 22*2+1); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("bar cell: got %v, want white", got)
	}
	if got := img.NRGBAAt(32*2+1, 32*2+1); got.A != 0 {
		t.Errorf("center gap: got %v, want transparent", got)
	}
	if got := img.NRGBAAt(0, 0); got.A != 0 {
		t.Errorf("corner: got %v, want transparent", got)
	}
}

func TestSnapshot_UnitScaleMatchesGrid(t *testing.T) {
	g := newTestGrid(t, 5)
	g.Set(4, 1, red)

	img := Snapshot(g, 1)
	if b := img.Bounds(); b.Dx() != 5 {
		t.Fatalf("width: got %d, want 5", b.Dx())
	}
	if got := img.NRGBAAt(4, 1); got != opaqueRed {
		t.Errorf("(4,1): got %v", got)
	}
}

func TestCompose(t *testing.T) {
	g := newTestGrid(t, 4)
	g.Set(0, 0, red)

	bg := filled(200, 100, opaqueBlack)
	out := Compose(bg, g, 2)

	if b := out.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("bounds: got %v", b)
	}
	// Extent(4, (100,50), 2) is (96,46)-(104,54).
	if got := out.NRGBAAt(96, 46); got != opaqueRed {
		t.Errorf("(96,46): got %v, want red", got)
	}
	if got := out.NRGBAAt(102, 52); got != opaqueBlack {
		t.Errorf("transparent cell should show the background, got %v", got)
	}
	if got := out.NRGBAAt(0, 0); got != opaqueBlack {
		t.Errorf("(0,0): got %v", got)
	}
	if bg.NRGBAAt(96, 46) != opaqueBlack {
		t.Error("Compose modified the background")
	}
}

func TestCanvas(t *testing.T) {
	g := newTestGrid(t, 2)
	g.Set(1, 0, red)

	img := Canvas(g, 4, nil)

	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("bounds: got %v", b)
	}

	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"light checker", 1, 1, CheckerLight},
		{"dark checker", 1, 5, CheckerDark},
		{"drawn cell", 5, 1, opaqueRed},
		{"border", 0, 0, CellBorder},
		{"border of drawn cell", 7, 2, CellBorder},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("%s (%d,%d): got %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCanvas_Preview(t *testing.T) {
	g := newTestGrid(t, 2)
	before := g.Clone()

	preview := []editor.Write{
		{X: 1, Y: 1, Pixel: crosshair.White},
		{X: 5, Y: -3, Pixel: crosshair.White}, // off-grid, ignored
	}
	img := Canvas(g, 4, preview)

	got := img.NRGBAAt(5, 5)
	if got.R <= CheckerDark.R || got.R >= 255 {
		t.Errorf("preview cell should be a half-alpha blend, got %v", got)
	}
	if !g.Equal(before) {
		t.Error("Canvas modified the grid")
	}
}

func TestCanvas_SmallCellsHaveNoBorder(t *testing.T) {
	g := newTestGrid(t, 3)
	g.Set(0, 0, red)

	img := Canvas(g, 1, nil)
	if got := img.NRGBAAt(0, 0); got != opaqueRed {
		t.Errorf("(0,0): got %v, want red", got)
	}

	img = Canvas(g, 0, nil)
	if b := img.Bounds(); b.Dx() != 3 {
		t.Errorf("cell size should be at least 1, got width %d", b.Dx())
	}
}

func TestCheckLimits(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"scale at limit", CheckScale(64, MaxSide/64), false},
		{"scale above limit", CheckScale(64, MaxSide/64+0.5), true},
		{"huge scale", CheckScale(64, 1e12), true},
		{"cell at limit", CheckCell(64, MaxSide/64), false},
		{"cell above limit", CheckCell(64, MaxSide/64+1), true},
		{"huge cell", CheckCell(crosshair.MaxSize, 1<<40), true},
		{"empty grid", CheckCell(0, 1<<40), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.wantErr {
				t.Fatalf("got %v, wantErr %v", tt.err, tt.wantErr)
			}
			if tt.err != nil && !errors.Is(tt.err, ErrTooLarge) {
				t.Errorf("error should wrap ErrTooLarge, got %v", tt.err)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	src := filled(3, 2, opaqueRed)

	enc, err := Encode(src)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if enc.Width != 3 || enc.Height != 2 || enc.MimeType != "image/png" {
		t.Errorf("unexpected metadata: %+v", enc)
	}

	data, err := base64.StdEncoding.DecodeString(enc.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	if img.Bounds() != src.Bounds() {
		t.Errorf("decoded bounds: got %v", img.Bounds())
	}
}

func TestSavePNGLoadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crosshair.png")

	g := newTestGrid(t, 4)
	g.Set(2, 1, red)
	if err := SavePNG(path, Snapshot(g, 3)); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 12 {
		t.Fatalf("bounds: got %v", b)
	}
	got := color.NRGBAModel.Convert(img.At(7, 4)).(color.NRGBA)
	if got != opaqueRed {
		t.Errorf("(7,4): got %v, want red", got)
	}
}

func TestLoadImage_Missing(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Error("LoadImage should fail for a missing file")
	}
}
