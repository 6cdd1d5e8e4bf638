package editor

import (
	"fmt"
	"strings"

	"github.com/ironsheep/clean-crosshair/internal/crosshair"
)

// Tool selects what a gesture does to the grid.
type Tool int

const (
	ToolPencil Tool = iota
	ToolEraser
	ToolLine
	ToolRectangle
	ToolFilledRectangle
	ToolCircle
	ToolFilledCircle
	ToolColorPicker
)

var toolNames = [...]string{
	ToolPencil:          "pencil",
	ToolEraser:          "eraser",
	ToolLine:            "line",
	ToolRectangle:       "rectangle",
	ToolFilledRectangle: "filled_rectangle",
	ToolCircle:          "circle",
	ToolFilledCircle:    "filled_circle",
	ToolColorPicker:     "color_picker",
}

// Tools lists every tool in toolbar order.
var Tools = []Tool{
	ToolPencil, ToolEraser, ToolLine, ToolRectangle,
	ToolFilledRectangle, ToolCircle, ToolFilledCircle, ToolColorPicker,
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("tool(%d)", int(t))
	}
	return toolNames[t]
}

// ParseTool returns the tool with the given wire name. Matching ignores case
// and treats '-' and ' ' like '_'.
func ParseTool(name string) (Tool, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	for i, s := range toolNames {
		if s == n {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool: %s", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tool) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tool) UnmarshalText(b []byte) error {
	v, err := ParseTool(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Freehand reports whether the tool paints while the pointer moves.
func (t Tool) Freehand() bool { return t == ToolPencil || t == ToolEraser }

// Shape reports whether the tool commits a single shape on release.
func (t Tool) Shape() bool {
	switch t {
	case ToolLine, ToolRectangle, ToolFilledRectangle, ToolCircle, ToolFilledCircle:
		return true
	}
	return false
}

// Gesture is the segment of pointer motion a tool is applied to.
// For shape tools From is the press point and To the release point; for
// freehand tools it is the latest increment of the stroke.
type Gesture struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Apply returns the pixel writes tool produces for gesture on a size x size
// grid painted with brush.
//
// The color picker produces no writes; the editor handles it by reading the
// grid instead. All writes are already clipped to the grid.
func Apply(tool Tool, g Gesture, brush Brush, size int) []Write {
	f, t := g.From, g.To
	switch tool {
	case ToolPencil:
		return LineWrites(size, brush, f.X, f.Y, t.X, t.Y)
	case ToolEraser:
		brush.Pixel = crosshair.Transparent
		return LineWrites(size, brush, f.X, f.Y, t.X, t.Y)
	case ToolLine:
		return LineWrites(size, brush, f.X, f.Y, t.X, t.Y)
	case ToolRectangle:
		return RectangleWrites(size, brush, f.X, f.Y, t.X, t.Y, false)
	case ToolFilledRectangle:
		return RectangleWrites(size, brush, f.X, f.Y, t.X, t.Y, true)
	case ToolCircle:
		return CircleWrites(size, brush, f.X, f.Y, t.X, t.Y, false)
	case ToolFilledCircle:
		return CircleWrites(size, brush, f.X, f.Y, t.X, t.Y, true)
	default:
		return nil
	}
}
