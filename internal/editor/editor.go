package editor

import (
	"fmt"

	"github.com/ironsheep/clean-crosshair/internal/crosshair"
)

// Brush size limits offered by the editor.
const (
	MinBrushSize = 1
	MaxBrushSize = 10
)

// Phase is the position of the editor in the press-drag-release cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePressed
	PhaseDragging
)

func (p Phase) String() string {
	switch p {
	case PhasePressed:
		return "pressed"
	case PhaseDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*p = PhaseIdle
	case "pressed":
		*p = PhasePressed
	case "dragging":
		*p = PhaseDragging
	default:
		return fmt.Errorf("unknown phase: %s", b)
	}
	return nil
}

// State is a snapshot of the drawing session.
type State struct {
	Tool      Tool            `json:"tool"`
	BrushSize int             `json:"brush_size"`
	Color     crosshair.Pixel `json:"color"`
	Phase     Phase           `json:"phase"`
	Anchor    *Point          `json:"anchor,omitempty"`
	Current   *Point          `json:"current,omitempty"`
}

// Editor applies tool gestures to a grid it does not own.
//
// The grid must outlive the editor. Loading a preset replaces the grid
// contents in place, so the editor keeps working on the same *Grid.
type Editor struct {
	grid      *crosshair.Grid
	tool      Tool
	brushSize int
	color     crosshair.Pixel

	phase   Phase
	anchor  Point
	current Point
}

// New returns an editor drawing on grid with the pencil, brush size 1 and
// opaque white.
func New(grid *crosshair.Grid) *Editor {
	return &Editor{
		grid:      grid,
		tool:      ToolPencil,
		brushSize: MinBrushSize,
		color:     crosshair.White,
	}
}

// Grid returns the grid being edited.
func (e *Editor) Grid() *crosshair.Grid { return e.grid }

// Tool returns the selected tool.
func (e *Editor) Tool() Tool { return e.tool }

// SetTool selects a tool. An in-progress gesture is abandoned; shape tools
// therefore never commit a partial shape.
func (e *Editor) SetTool(t Tool) {
	e.Cancel()
	e.tool = t
}

// BrushSize returns the brush size in cells.
func (e *Editor) BrushSize() int { return e.brushSize }

// SetBrushSize sets the brush size, clamped to [MinBrushSize, MaxBrushSize].
func (e *Editor) SetBrushSize(n int) {
	e.brushSize = max(MinBrushSize, min(MaxBrushSize, n))
}

// Color returns the draw color.
func (e *Editor) Color() crosshair.Pixel { return e.color }

// SetColor sets the draw color. The eraser ignores it.
func (e *Editor) SetColor(p crosshair.Pixel) { e.color = p }

// Phase returns where the editor is in the press-drag-release cycle.
func (e *Editor) Phase() Phase { return e.phase }

// State returns a snapshot of the session.
func (e *Editor) State() State {
	s := State{
		Tool:      e.tool,
		BrushSize: e.brushSize,
		Color:     e.color,
		Phase:     e.phase,
	}
	if e.phase != PhaseIdle {
		a, c := e.anchor, e.current
		s.Anchor, s.Current = &a, &c
	}
	return s
}

func (e *Editor) brush() Brush {
	return Brush{Size: e.brushSize, Pixel: e.color}
}

func (e *Editor) apply(tool Tool, g Gesture) []Write {
	return e.commit(Apply(tool, g, e.brush(), e.grid.Size()))
}

// Press starts a gesture at (x, y) and returns the writes committed.
//
// Freehand tools paint at once. The color picker copies the pixel under
// (x, y) into the draw color when the point is on the grid. Shape tools only
// record the anchor. Pressing during a gesture abandons it first.
func (e *Editor) Press(x, y int) []Write {
	e.Cancel()
	p := Point{X: x, Y: y}
	e.phase = PhasePressed
	e.anchor, e.current = p, p

	switch {
	case e.tool.Freehand():
		return e.apply(e.tool, Gesture{From: p, To: p})
	case e.tool == ToolColorPicker:
		if s := e.grid.Size(); x >= 0 && x < s && y >= 0 && y < s {
			e.color = e.grid.At(x, y)
		}
	}
	return nil
}

// Drag moves the active gesture to (x, y). Freehand tools paint the segment
// from the anchor and re-anchor at (x, y); shape tools only update the
// preview. Drag outside a gesture does nothing.
func (e *Editor) Drag(x, y int) []Write {
	if e.phase == PhaseIdle {
		return nil
	}
	p := Point{X: x, Y: y}
	e.phase = PhaseDragging
	e.current = p

	if !e.tool.Freehand() {
		return nil
	}
	writes := e.apply(e.tool, Gesture{From: e.anchor, To: p})
	e.anchor = p
	return writes
}

// Release ends the gesture at (x, y). Shape tools commit once from the
// original press point to (x, y); freehand tools paint any remaining
// segment. Release outside a gesture does nothing.
func (e *Editor) Release(x, y int) []Write {
	if e.phase == PhaseIdle {
		return nil
	}
	p := Point{X: x, Y: y}
	e.current = p
	defer e.Cancel()

	switch {
	case e.tool.Shape():
		return e.apply(e.tool, Gesture{From: e.anchor, To: p})
	case e.tool.Freehand() && p != e.anchor:
		return e.apply(e.tool, Gesture{From: e.anchor, To: p})
	}
	return nil
}

// Cancel abandons the active gesture without committing anything further.
func (e *Editor) Cancel() {
	e.phase = PhaseIdle
	e.anchor, e.current = Point{}, Point{}
}

// Preview returns the shape gesture in progress, if any.
func (e *Editor) Preview() (Gesture, bool) {
	if e.phase == PhaseIdle || !e.tool.Shape() {
		return Gesture{}, false
	}
	return Gesture{From: e.anchor, To: e.current}, true
}

// PreviewWrites returns the writes the in-progress shape would commit if
// released now. The grid is not modified.
func (e *Editor) PreviewWrites() []Write {
	g, ok := e.Preview()
	if !ok {
		return nil
	}
	return Apply(e.tool, g, e.brush(), e.grid.Size())
}

// Clear makes every grid pixel transparent.
func (e *Editor) Clear() {
	e.Cancel()
	e.grid.Clear()
}

// PaintBrush stamps the draw color centered on (x, y).
func (e *Editor) PaintBrush(x, y int) []Write {
	return e.commit(BrushWrites(e.grid.Size(), e.brush(), x, y))
}

// Erase stamps transparency centered on (x, y).
func (e *Editor) Erase(x, y int) []Write {
	b := e.brush()
	b.Pixel = crosshair.Transparent
	return e.commit(BrushWrites(e.grid.Size(), b, x, y))
}

// PaintLine draws a line from (x1, y1) to (x2, y2) with the current brush.
func (e *Editor) PaintLine(x1, y1, x2, y2 int) []Write {
	return e.commit(LineWrites(e.grid.Size(), e.brush(), x1, y1, x2, y2))
}

// PaintRectangle draws a rectangle spanning both corners.
func (e *Editor) PaintRectangle(x1, y1, x2, y2 int, filled bool) []Write {
	return e.commit(RectangleWrites(e.grid.Size(), e.brush(), x1, y1, x2, y2, filled))
}

// PaintCircle draws the circle inscribed in the box spanned by both corners.
func (e *Editor) PaintCircle(x1, y1, x2, y2 int, filled bool) []Write {
	return e.commit(CircleWrites(e.grid.Size(), e.brush(), x1, y1, x2, y2, filled))
}

func (e *Editor) commit(writes []Write) []Write {
	for _, w := range writes {
		e.grid.Set(w.X, w.Y, w.Pixel)
	}
	return writes
}
