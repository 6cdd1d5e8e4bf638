package render

import (
	"errors"
	"image"
	"image/draw"
	"log/slog"

	"github.com/ironsheep/clean-crosshair/internal/crosshair"
	"github.com/ironsheep/clean-crosshair/internal/logging"
	xdraw "golang.org/x/image/draw"
)

// ErrOverlayUnsupported is returned by OpenOverlay on platforms without a
// framebuffer device.
var ErrOverlayUnsupported = errors.New("framebuffer overlay is not supported on this platform")

// Overlay shows a crosshair centered on a screen surface.
//
// Before drawing, the overlay saves the pixels it is about to cover and puts
// them back on the next Show, Hide or Close, so the surface underneath is
// left as it was found.
type Overlay struct {
	dst    draw.Image
	close  func()
	logger *slog.Logger

	saved *image.RGBA
	area  image.Rectangle
}

// NewOverlay returns an overlay drawing on dst. closeFn, if not nil, is
// called by Close after the surface has been restored.
func NewOverlay(dst draw.Image, closeFn func(), logger *slog.Logger) *Overlay {
	return &Overlay{
		dst:    dst,
		close:  closeFn,
		logger: logging.OrNop(logger).With("component", "overlay"),
	}
}

// Bounds returns the bounds of the drawing surface.
func (o *Overlay) Bounds() image.Rectangle { return o.dst.Bounds() }

// Area returns the rectangle currently covered by the crosshair, or the empty
// rectangle if nothing is shown.
func (o *Overlay) Area() image.Rectangle { return o.area }

// Show draws g at scale centered on the surface, replacing any crosshair
// shown before.
func (o *Overlay) Show(g *crosshair.Grid, scale float64) {
	o.Hide()

	b := o.dst.Bounds()
	center := image.Pt(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2)
	target := Extent(g.Size(), center, scale)
	area := target.Intersect(b)
	if area.Empty() {
		return
	}

	o.saved = image.NewRGBA(area)
	draw.Draw(o.saved, area, o.dst, area.Min, draw.Src)
	o.area = area

	src := g.Image()
	xdraw.NearestNeighbor.Scale(o.dst, target, src, src.Bounds(), xdraw.Over, nil)
	o.logger.Debug("crosshair shown", "area", area, "scale", scale, "size", g.Size())
}

// Hide restores the pixels under the current crosshair.
func (o *Overlay) Hide() {
	if o.saved == nil {
		return
	}
	draw.Draw(o.dst, o.area, o.saved, o.area.Min, draw.Src)
	o.saved = nil
	o.area = image.Rectangle{}
}

// Close hides the crosshair and releases the surface.
func (o *Overlay) Close() {
	o.Hide()
	if o.close != nil {
		o.close()
	}
}
