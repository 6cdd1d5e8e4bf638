package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/clean-crosshair/internal/crosshair"
	"github.com/ironsheep/clean-crosshair/internal/editor"
)

// Editor canvas colors.
var (
	CheckerLight = color.NRGBA{R: 50, G: 50, B: 50, A: 255}
	CheckerDark  = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	CellBorder   = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
)

// PreviewAlpha is the alpha used for cells of an uncommitted shape.
const PreviewAlpha = 128

// MaxSide is the largest width or height, in pixels, of a rendered grid.
const MaxSide = 8192

// ErrTooLarge is returned when a rendered grid would exceed MaxSide.
var ErrTooLarge = errors.New("rendered image too large")

// CheckScale reports whether a grid of the given size drawn at scale fits in
// MaxSide. Snapshot and Compose callers must check before rendering.
func CheckScale(size int, scale float64) error {
	if side := float64(size) * scale; side > MaxSide {
		return fmt.Errorf("%w: %d cells at scale %v is %.0f pixels, limit %d", ErrTooLarge, size, scale, side, MaxSide)
	}
	return nil
}

// CheckCell reports whether a canvas of the given grid size with cell pixels
// per cell fits in MaxSide.
func CheckCell(size, cell int) error {
	if size > 0 && cell > MaxSide/size {
		return fmt.Errorf("%w: %d cells of %d pixels exceeds %d pixels", ErrTooLarge, size, cell, MaxSide)
	}
	return nil
}

// Snapshot returns the grid at the given scale on a transparent background.
// The image is exactly as large as the area Draw would cover.
func Snapshot(g *crosshair.Grid, scale float64) *image.NRGBA {
	side := Extent(g.Size(), image.Point{}, scale).Dx()
	if side <= 0 {
		side = 1
	}
	return imaging.Resize(g.Image(), side, side, imaging.NearestNeighbor)
}

// Compose draws the grid at scale centered over a copy of bg, the way the
// overlay shows it on screen.
func Compose(bg image.Image, g *crosshair.Grid, scale float64) *image.NRGBA {
	b := bg.Bounds()
	center := image.Pt(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2)
	area := Extent(g.Size(), center, scale)

	snap := Snapshot(g, scale)
	return imaging.Overlay(bg, snap, area.Min, 1.0)
}

// Canvas renders the editor view of g with cell pixels per grid cell.
//
// Transparent cells show a checkerboard, every cell gets a one-pixel border
// when cell is at least 3, and preview writes are blended on top at
// PreviewAlpha without touching the grid.
func Canvas(g *crosshair.Grid, cell int, preview []editor.Write) *image.NRGBA {
	cell = max(cell, 1)
	size := g.Size()
	img := imaging.New(size*cell, size*cell, CheckerDark)
	p := ImagePainter{Dst: img}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r := image.Rect(x*cell, y*cell, (x+1)*cell, (y+1)*cell)
			if (x+y)%2 == 0 {
				p.FillRect(r, CheckerLight)
			}
			if px := g.At(x, y); !px.IsTransparent() {
				p.FillRect(r, px)
			}
		}
	}

	for _, w := range preview {
		if w.X < 0 || w.X >= size || w.Y < 0 || w.Y >= size {
			continue
		}
		c := color.NRGBA{R: w.Pixel.R, G: w.Pixel.G, B: w.Pixel.B, A: PreviewAlpha}
		p.FillRect(image.Rect(w.X*cell, w.Y*cell, (w.X+1)*cell, (w.Y+1)*cell), c)
	}

	if cell >= 3 {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				strokeRect(p, image.Rect(x*cell, y*cell, (x+1)*cell, (y+1)*cell), CellBorder)
			}
		}
	}
	return img
}

// strokeRect paints the one-pixel outline just inside r.
func strokeRect(p Painter, r image.Rectangle, c color.Color) {
	p.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	p.FillRect(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	p.FillRect(image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1), c)
	p.FillRect(image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1), c)
}

// Encoded is a PNG image ready to be returned over the tool protocol.
type Encoded struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Encode returns img as a base64 PNG.
func Encode(img image.Image) (*Encoded, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	b := img.Bounds()
	return &Encoded{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
