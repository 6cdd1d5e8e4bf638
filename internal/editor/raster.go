package editor

import "github.com/ironsheep/clean-crosshair/internal/crosshair"

// Point is a cell coordinate on the grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Write is one pending pixel assignment produced by a rasterizer.
type Write struct {
	X     int             `json:"x"`
	Y     int             `json:"y"`
	Pixel crosshair.Pixel `json:"pixel"`
}

// Brush describes how a single stamp is painted.
//
// Size is the side of the square stamp: every cell in
// [c-Size/2, c+Size/2] on both axes is painted, so even sizes paint the same
// square as the next odd size.
type Brush struct {
	Size  int
	Pixel crosshair.Pixel
}

// MaxCoord bounds the coordinates the rasterizers work with. Endpoints
// further out are clamped to [-MaxCoord, MaxCoord] before rasterizing, which
// keeps every intermediate value far from overflow.
const MaxCoord = 1 << 24

func clampCoord(v int) int { return max(-MaxCoord, min(MaxCoord, v)) }

// plotter accumulates brush stamps as writes clipped to a size x size grid.
type plotter struct {
	size   int
	brush  Brush
	writes []Write

	// lo and hi bound the stamp centers that can touch the grid.
	lo, hi int
}

func newPlotter(size int, b Brush) *plotter {
	if b.Size < 1 {
		b.Size = 1
	}
	half := b.Size / 2
	return &plotter{size: size, brush: b, lo: -half, hi: size - 1 + half}
}

// reaches reports whether a stamp centered on v can touch the grid along one
// axis.
func (p *plotter) reaches(v int) bool { return v >= p.lo && v <= p.hi }

func (p *plotter) stamp(cx, cy int) {
	if !p.reaches(cx) || !p.reaches(cy) {
		return
	}
	half := p.brush.Size / 2
	for y := cy - half; y <= cy+half; y++ {
		if y < 0 || y >= p.size {
			continue
		}
		for x := cx - half; x <= cx+half; x++ {
			if x < 0 || x >= p.size {
				continue
			}
			p.writes = append(p.writes, Write{X: x, Y: y, Pixel: p.brush.Pixel})
		}
	}
}

// misses reports whether the box [x1,x2] x [y1,y2] lies entirely out of reach.
func (p *plotter) misses(x1, y1, x2, y2 int) bool {
	return x2 < p.lo || x1 > p.hi || y2 < p.lo || y1 > p.hi
}

// line steps an integer Bresenham line and stamps every visited cell.
func (p *plotter) line(x1, y1, x2, y2 int) {
	x1, y1, x2, y2 = clampCoord(x1), clampCoord(y1), clampCoord(x2), clampCoord(y2)
	if p.misses(min(x1, x2), min(y1, y2), max(x1, x2), max(y1, y2)) {
		return
	}

	// Walk from the lexicographically smaller endpoint so the visited set
	// does not depend on the direction of the gesture.
	if x2 < x1 || (x2 == x1 && y2 < y1) {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		p.stamp(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		// x never decreases, so past the grid nothing more can be painted.
		if x1 > p.hi || (dx == 0 && y1 > p.hi) {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// rectangle walks only the part of the box whose stamps can touch the grid.
func (p *plotter) rectangle(x1, y1, x2, y2 int, filled bool) {
	x1, y1, x2, y2 = clampCoord(x1), clampCoord(y1), clampCoord(x2), clampCoord(y2)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if p.misses(x1, y1, x2, y2) {
		return
	}
	xa, xb := max(x1, p.lo), min(x2, p.hi)

	if filled {
		for y := max(y1, p.lo); y <= min(y2, p.hi); y++ {
			for x := xa; x <= xb; x++ {
				p.stamp(x, y)
			}
		}
		return
	}

	for x := xa; x <= xb; x++ {
		p.stamp(x, y1)
		p.stamp(x, y2)
	}
	for y := max(y1+1, p.lo); y <= min(y2-1, p.hi); y++ {
		p.stamp(x1, y)
		p.stamp(x2, y)
	}
}

// circle uses the bounding-box radius: the larger of the two half extents.
func (p *plotter) circle(x1, y1, x2, y2 int, filled bool) {
	x1, y1, x2, y2 = clampCoord(x1), clampCoord(y1), clampCoord(x2), clampCoord(y2)
	cx := (x1 + x2) / 2
	cy := (y1 + y2) / 2
	r := max(abs(x2-x1)/2, abs(y2-y1)/2)
	if p.misses(cx-r, cy-r, cx+r, cy+r) {
		return
	}

	if filled {
		for y := max(cy-r, p.lo); y <= min(cy+r, p.hi); y++ {
			for x := max(cx-r, p.lo); x <= min(cx+r, p.hi); x++ {
				dx, dy := x-cx, y-cy
				if dx*dx+dy*dy <= r*r {
					p.stamp(x, y)
				}
			}
		}
		return
	}

	x, y, err := r, 0, 0
	for x >= y {
		p.stamp(cx+x, cy+y)
		p.stamp(cx+y, cy+x)
		p.stamp(cx-y, cy+x)
		p.stamp(cx-x, cy+y)
		p.stamp(cx-x, cy-y)
		p.stamp(cx-y, cy-x)
		p.stamp(cx+y, cy-x)
		p.stamp(cx+x, cy-y)

		y++
		if err <= 0 {
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}

// BrushWrites returns the writes of a single stamp centered on (cx, cy).
func BrushWrites(size int, b Brush, cx, cy int) []Write {
	p := newPlotter(size, b)
	p.stamp(cx, cy)
	return p.writes
}

// LineWrites returns the writes of a brush-stroked Bresenham line. Both
// endpoints are included and swapping them yields the same cells.
func LineWrites(size int, b Brush, x1, y1, x2, y2 int) []Write {
	p := newPlotter(size, b)
	p.line(x1, y1, x2, y2)
	return p.writes
}

// RectangleWrites returns the writes of an axis-aligned rectangle spanning
// both corners (inclusive), either filled or as a one-stamp-wide outline.
func RectangleWrites(size int, b Brush, x1, y1, x2, y2 int, filled bool) []Write {
	p := newPlotter(size, b)
	p.rectangle(x1, y1, x2, y2, filled)
	return p.writes
}

// CircleWrites returns the writes of a circle inscribed in the box spanned by
// the two corners. The center is the integer midpoint and the radius is
// max(|x2-x1|/2, |y2-y1|/2).
func CircleWrites(size int, b Brush, x1, y1, x2, y2 int, filled bool) []Write {
	p := newPlotter(size, b)
	p.circle(x1, y1, x2, y2, filled)
	return p.writes
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
