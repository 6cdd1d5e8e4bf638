package server

import "github.com/ironsheep/clean-crosshair/internal/editor"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func integer(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

func str(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func object(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

var (
	xProp     = integer("Grid X coordinate (0-based, from left). Off-grid values are clipped.")
	yProp     = integer("Grid Y coordinate (0-based, from top). Off-grid values are clipped.")
	colorProp = str(`Color as "#RGB", "#RRGGBB", "#RRGGBBAA" or a swatch name such as "red"`)
)

func cornerProps(filled bool) map[string]interface{} {
	props := map[string]interface{}{
		"x1": integer("First corner X"),
		"y1": integer("First corner Y"),
		"x2": integer("Second corner X"),
		"y2": integer("Second corner Y"),
	}
	if filled {
		props["filled"] = map[string]interface{}{
			"type":        "boolean",
			"description": "Fill the shape instead of drawing its outline. Default false",
			"default":     false,
		}
	}
	return props
}

func toolNames() []string {
	names := make([]string, len(editor.Tools))
	for i, t := range editor.Tools {
		names[i] = t.String()
	}
	return names
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Grid Operations
		{
			Name:        "crosshair_info",
			Description: "Get the size of the live crosshair grid, its number of drawn pixels and the current preset.",
			InputSchema: object(map[string]interface{}{}),
		},
		{
			Name:        "crosshair_get_pixel",
			Description: "Get the color of one grid cell. Cells outside the grid read as transparent.",
			InputSchema: object(map[string]interface{}{"x": xProp, "y": yProp}, "x", "y"),
		},
		{
			Name:        "crosshair_set_pixel",
			Description: "Set one grid cell to a color, ignoring the brush size. Writes outside the grid are ignored.",
			InputSchema: object(map[string]interface{}{"x": xProp, "y": yProp, "color": colorProp}, "x", "y", "color"),
		},
		{
			Name:        "crosshair_clear",
			Description: "Make every cell of the crosshair transparent.",
			InputSchema: object(map[string]interface{}{}),
		},
		{
			Name:        "crosshair_reset_default",
			Description: "Replace the crosshair with the default white plus sign with a gap in the middle.",
			InputSchema: object(map[string]interface{}{}),
		},
		{
			Name:        "crosshair_resize",
			Description: "Change the grid size. The top-left region that fits in both sizes is kept; new cells are transparent.",
			InputSchema: object(map[string]interface{}{"size": integer("New side length in cells (1-512)")}, "size"),
		},
		{
			Name:        "crosshair_serialize",
			Description: `Return the crosshair in preset file form: "size,r,g,b,a,..." in row-major order.`,
			InputSchema: object(map[string]interface{}{}),
		},
		{
			Name:        "crosshair_deserialize",
			Description: "Replace the crosshair from its serialized form. Malformed data is rejected and the crosshair is left unchanged.",
			InputSchema: object(map[string]interface{}{"data": str(`Serialized grid, "size,r,g,b,a,..."`)}, "data"),
		},
		{
			Name:        "crosshair_render",
			Description: "Render the crosshair as a base64-encoded PNG: alone (snapshot), as the editor canvas with grid lines and the shape in progress (canvas), or centered over a screenshot (compose).",
			InputSchema: object(map[string]interface{}{
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{renderSnapshot, renderCanvas, renderCompose},
					"description": "What to render. Default snapshot",
					"default":     renderSnapshot,
				},
				"scale": map[string]interface{}{
					"type":        "number",
					"description": "Screen pixels per cell for snapshot and compose. Default is the CrosshairScale setting",
				},
				"cell": map[string]interface{}{
					"type":        "integer",
					"description": "Canvas pixels per cell for canvas mode. Default 8",
					"default":     8,
				},
				"background": str("Absolute path to a background image for compose mode"),
				"path":       str("Optional absolute path; the PNG is also written there"),
			}),
		},

		// Editor Operations
		{
			Name:        "editor_set_tool",
			Description: "Select the drawing tool. Switching tools abandons a shape in progress.",
			InputSchema: object(map[string]interface{}{
				"tool": map[string]interface{}{
					"type":        "string",
					"enum":        toolNames(),
					"description": "Tool name",
				},
			}, "tool"),
		},
		{
			Name:        "editor_set_brush_size",
			Description: "Set the brush size. Values are clamped to 1..10.",
			InputSchema: object(map[string]interface{}{"size": integer("Brush side length in cells")}, "size"),
		},
		{
			Name:        "editor_set_color",
			Description: "Set the draw color.",
			InputSchema: object(map[string]interface{}{"color": colorProp}, "color"),
		},
		{
			Name:        "editor_state",
			Description: "Get the selected tool, brush size, draw color and any gesture in progress.",
			InputSchema: object(map[string]interface{}{}),
		},
		{
			Name:        "editor_press",
			Description: "Press the pointer on a cell. Pencil and eraser paint at once; the color picker takes the cell's color; shape tools start a shape.",
			InputSchema: object(map[string]interface{}{"x": xProp, "y": yProp}, "x", "y"),
		},
		{
			Name:        "editor_drag",
			Description: "Move the pressed pointer to a cell. Pencil and eraser paint a trail; shape tools only update the preview.",
			InputSchema: object(map[string]interface{}{"x": xProp, "y": yProp}, "x", "y"),
		},
		{
			Name:        "editor_release",
			Description: "Release the pointer on a cell. Shape tools draw their shape from the press cell to this cell.",
			InputSchema: object(map[string]interface{}{"x": xProp, "y": yProp}, "x", "y"),
		},
		{
			Name:        "editor_cancel",
			Description: "Abandon the gesture in progress without drawing the shape.",
			InputSchema: object(map[string]interface{}{}),
		},
		{
			Name:        "editor_draw_line",
			Description: "Draw a line between two cells with the current brush and color.",
			InputSchema: object(cornerProps(false), "x1", "y1", "x2", "y2"),
		},
		{
			Name:        "editor_draw_rectangle",
			Description: "Draw a rectangle with corners at two cells with the current brush and color.",
			InputSchema: object(cornerProps(true), "x1", "y1", "x2", "y2"),
		},
		{
			Name:        "editor_draw_circle",
			Description: "Draw a circle inside the box spanned by two cells with the current brush and color. The radius is half the longer side of the box.",
			InputSchema: object(cornerProps(true), "x1", "y1", "x2", "y2"),
		},
		{
			Name:        "palette_list",
			Description: "List the named quick-pick colors.",
			InputSchema: object(map[string]interface{}{}),
		},

		// Preset Operations
		{
			Name:        "preset_list",
			Description: "List saved presets in sorted order and the current preset.",
			InputSchema: object(map[string]interface{}{}),
		},
		{
			Name:        "preset_save",
			Description: "Save the crosshair as a preset, replacing any preset with the same name.",
			InputSchema: object(map[string]interface{}{"name": str("Preset name")}, "name"),
		},
		{
			Name:        "preset_load",
			Description: "Load a preset into the crosshair. A malformed preset is rejected and the crosshair is left unchanged.",
			InputSchema: object(map[string]interface{}{"name": str("Preset name")}, "name"),
		},
		{
			Name:        "preset_delete",
			Description: "Delete a preset. Deleting the current preset loads the first remaining one.",
			InputSchema: object(map[string]interface{}{"name": str("Preset name")}, "name"),
		},

		// Settings
		{
			Name:        "settings_get",
			Description: "Get the application settings.",
			InputSchema: object(map[string]interface{}{}),
		},
		{
			Name:        "settings_set",
			Description: "Change and save application settings. Omitted fields are left unchanged.",
			InputSchema: object(map[string]interface{}{
				"start_with_windows": map[string]interface{}{"type": "boolean", "description": "Start with the desktop session"},
				"start_minimized":    map[string]interface{}{"type": "boolean", "description": "Start without showing the editor"},
				"crosshair_scale": map[string]interface{}{
					"type":        "number",
					"description": "Screen pixels per cell, clamped to 0.5..5",
				},
			}),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
