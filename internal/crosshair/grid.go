package crosshair

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

const (
	// DefaultSize is the side length of a freshly created grid.
	DefaultSize = 64

	// MaxSize is the largest side length a grid may have.
	MaxSize = 512
)

// ErrInvalidSize is returned when a grid dimension is outside [1, MaxSize].
var ErrInvalidSize = errors.New("grid size out of range")

// Pixel is an 8-bit RGBA value. A == 0 means the cell is not drawn.
type Pixel struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// Transparent is the pixel returned for every out-of-range read.
var Transparent = Pixel{}

// White is the opaque white used by the default pattern.
var White = Pixel{R: 255, G: 255, B: 255, A: 255}

// RGBA implements color.Color. The channels are treated as non-premultiplied.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

// IsTransparent reports whether the pixel would be skipped when drawn.
func (p Pixel) IsTransparent() bool { return p.A == 0 }

// String returns the pixel as "(r,g,b,a)".
func (p Pixel) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", p.R, p.G, p.B, p.A)
}

// PixelFromColor converts any color.Color to a non-premultiplied Pixel.
func PixelFromColor(c color.Color) Pixel {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Grid is a square, row-major buffer of pixels.
//
// The zero value is not usable; create grids with New or NewSize.
type Grid struct {
	size int
	pix  []Pixel
}

// New creates a DefaultSize x DefaultSize grid with every pixel transparent.
func New() *Grid {
	g, _ := NewSize(DefaultSize)
	return g
}

// NewSize creates a size x size grid with every pixel transparent.
//
// Returns ErrInvalidSize if size is not in [1, MaxSize].
func NewSize(size int) (*Grid, error) {
	if size <= 0 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Grid{size: size, pix: make([]Pixel, size*size)}, nil
}

// Size returns the side length of the grid.
func (g *Grid) Size() int { return g.size }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// At returns the pixel at (x, y), or Transparent if (x, y) is outside the grid.
func (g *Grid) At(x, y int) Pixel {
	if !g.inBounds(x, y) {
		return Transparent
	}
	return g.pix[y*g.size+x]
}

// Set stores p at (x, y). Writes outside the grid are ignored.
func (g *Grid) Set(x, y int, p Pixel) {
	if !g.inBounds(x, y) {
		return
	}
	g.pix[y*g.size+x] = p
}

// Clear makes every pixel transparent.
func (g *Grid) Clear() {
	clear(g.pix)
}

// ResetToDefault clears the grid and draws the classic plus-sign reticle.
//
// Both bars are opaque white, two cells thick and extend ten cells either
// side of the center (Size()/2). A 5x5 square around the center is then
// cleared again so the reticle has an open middle. On grids too small to hold
// the pattern the parts that fall outside are clipped.
func (g *Grid) ResetToDefault() {
	const (
		thickness = 2
		length    = 10
		gap       = 2
	)

	g.Clear()
	center := g.size / 2
	lo := center - thickness/2
	hi := center + thickness/2 + thickness%2

	for x := center - length; x <= center+length; x++ {
		for y := lo; y < hi; y++ {
			g.Set(x, y, White)
		}
	}
	for y := center - length; y <= center+length; y++ {
		for x := lo; x < hi; x++ {
			g.Set(x, y, White)
		}
	}

	for y := center - gap; y <= center+gap; y++ {
		for x := center - gap; x <= center+gap; x++ {
			g.Set(x, y, Transparent)
		}
	}
}

// Resize changes the grid dimension to newSize.
//
// The top-left min(old, new) square is copied into the new buffer; any new
// cells are transparent and cells beyond the new bounds are discarded. The
// operation is lossy. Resize returns false and leaves the grid untouched when
// newSize is not in [1, MaxSize].
func (g *Grid) Resize(newSize int) bool {
	if newSize <= 0 || newSize > MaxSize {
		return false
	}

	pix := make([]Pixel, newSize*newSize)
	keep := min(g.size, newSize)
	for y := 0; y < keep; y++ {
		copy(pix[y*newSize:y*newSize+keep], g.pix[y*g.size:y*g.size+keep])
	}

	g.pix = pix
	g.size = newSize
	return true
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	pix := make([]Pixel, len(g.pix))
	copy(pix, g.pix)
	return &Grid{size: g.size, pix: pix}
}

// CopyFrom replaces the contents of g with those of src.
func (g *Grid) CopyFrom(src *Grid) {
	pix := make([]Pixel, len(src.pix))
	copy(pix, src.pix)
	g.pix = pix
	g.size = src.size
}

// Equal reports whether both grids have the same size and pixels.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.size != other.size {
		return false
	}
	for i := range g.pix {
		if g.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// Opaque returns the number of pixels that would be drawn.
func (g *Grid) Opaque() int {
	n := 0
	for _, p := range g.pix {
		if !p.IsTransparent() {
			n++
		}
	}
	return n
}

// Image returns a copy of the grid as an *image.NRGBA, one image pixel per cell.
func (g *Grid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.size, g.size))
	for i, p := range g.pix {
		o := i * 4
		img.Pix[o+0] = p.R
		img.Pix[o+1] = p.G
		img.Pix[o+2] = p.B
		img.Pix[o+3] = p.A
	}
	return img
}
