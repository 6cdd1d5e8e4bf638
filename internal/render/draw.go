package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/ironsheep/clean-crosshair/internal/crosshair"
)

// Painter fills axis-aligned rectangles. It is the only primitive the
// presentation contract needs.
type Painter interface {
	FillRect(r image.Rectangle, c color.Color)
}

// ImagePainter paints onto a draw.Image, blending with draw.Over.
type ImagePainter struct {
	Dst draw.Image
}

// FillRect implements Painter.
func (p ImagePainter) FillRect(r image.Rectangle, c color.Color) {
	draw.Draw(p.Dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// Draw paints every drawn cell of g as a square of side scale, with the grid
// centered on anchor. Cell edges are rounded to whole pixels so neighbouring
// squares always touch. Nothing is drawn when scale is not positive.
func Draw(p Painter, g *crosshair.Grid, anchor image.Point, scale float64) {
	if scale <= 0 {
		return
	}

	size := g.Size()
	startX := float64(anchor.X) - float64(size)*scale/2
	startY := float64(anchor.Y) - float64(size)*scale/2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px := g.At(x, y)
			if px.IsTransparent() {
				continue
			}
			p.FillRect(cellRect(startX, startY, x, y, scale), px)
		}
	}
}

// Extent returns the screen rectangle covered by a grid of the given size
// drawn with Draw at anchor and scale.
func Extent(size int, anchor image.Point, scale float64) image.Rectangle {
	if scale <= 0 || size <= 0 {
		return image.Rectangle{Min: anchor, Max: anchor}
	}
	startX := float64(anchor.X) - float64(size)*scale/2
	startY := float64(anchor.Y) - float64(size)*scale/2
	return cellRect(startX, startY, 0, 0, float64(size)*scale)
}

func cellRect(startX, startY float64, x, y int, scale float64) image.Rectangle {
	return image.Rect(
		int(math.Round(startX+float64(x)*scale)),
		int(math.Round(startY+float64(y)*scale)),
		int(math.Round(startX+float64(x+1)*scale)),
		int(math.Round(startY+float64(y+1)*scale)),
	)
}

// CellAt converts a pointer position to grid coordinates for a grid whose
// top-left corner is at origin and whose cells are cell pixels wide.
//
// inside reports whether the coordinates fall within [0,size). The
// coordinates are returned either way.
func CellAt(pointer, origin image.Point, cell float64, size int) (x, y int, inside bool) {
	if cell <= 0 {
		return 0, 0, false
	}
	x = int(math.Floor(float64(pointer.X-origin.X) / cell))
	y = int(math.Floor(float64(pointer.Y-origin.Y) / cell))
	inside = x >= 0 && x < size && y >= 0 && y < size
	return x, y, inside
}
