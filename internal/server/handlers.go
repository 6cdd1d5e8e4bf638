package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/clean-crosshair/internal/crosshair"
	"github.com/ironsheep/clean-crosshair/internal/editor"
	"github.com/ironsheep/clean-crosshair/internal/palette"
	"github.com/ironsheep/clean-crosshair/internal/preset"
	"github.com/ironsheep/clean-crosshair/internal/render"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "editor_press", "preset_save").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// paramError marks a failure caused by the caller's arguments rather than by
// the tool itself. It is reported with code -32602.
type paramError struct {
	err error
}

func (e *paramError) Error() string { return e.err.Error() }
func (e *paramError) Unwrap() error { return e.err }

func invalidParams(format string, args ...interface{}) error {
	return &paramError{err: fmt.Errorf(format, args...)}
}

// decodeArgs unmarshals tool arguments. Missing arguments decode as the zero
// value so tools without parameters accept both {} and nothing.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return &paramError{err: fmt.Errorf("invalid arguments: %w", err)}
	}
	return nil
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Argument errors return code -32602; any other tool failure returns -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		var pe *paramError
		if errors.As(err, &pe) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Every handler works on the session's live grid and editor, so the effect of
// one call is visible to the next.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Grid Operations
	case "crosshair_info":
		return s.handleCrosshairInfo(args)
	case "crosshair_get_pixel":
		return s.handleCrosshairGetPixel(args)
	case "crosshair_set_pixel":
		return s.handleCrosshairSetPixel(args)
	case "crosshair_clear":
		return s.handleCrosshairClear(args)
	case "crosshair_reset_default":
		return s.handleCrosshairResetDefault(args)
	case "crosshair_resize":
		return s.handleCrosshairResize(args)
	case "crosshair_serialize":
		return s.handleCrosshairSerialize(args)
	case "crosshair_deserialize":
		return s.handleCrosshairDeserialize(args)
	case "crosshair_render":
		return s.handleCrosshairRender(args)

	// Editor Operations
	case "editor_set_tool":
		return s.handleEditorSetTool(args)
	case "editor_set_brush_size":
		return s.handleEditorSetBrushSize(args)
	case "editor_set_color":
		return s.handleEditorSetColor(args)
	case "editor_state":
		return s.handleEditorState(args)
	case "editor_press":
		return s.handleEditorGesture(args, (*editor.Editor).Press)
	case "editor_drag":
		return s.handleEditorGesture(args, (*editor.Editor).Drag)
	case "editor_release":
		return s.handleEditorGesture(args, (*editor.Editor).Release)
	case "editor_cancel":
		return s.handleEditorCancel(args)
	case "editor_draw_line":
		return s.handleEditorDrawLine(args)
	case "editor_draw_rectangle":
		return s.handleEditorDrawShape(args, (*editor.Editor).PaintRectangle)
	case "editor_draw_circle":
		return s.handleEditorDrawShape(args, (*editor.Editor).PaintCircle)
	case "palette_list":
		return s.handlePaletteList(args)

	// Preset Operations
	case "preset_list":
		return s.handlePresetList(args)
	case "preset_save":
		return s.handlePresetSave(args)
	case "preset_load":
		return s.handlePresetLoad(args)
	case "preset_delete":
		return s.handlePresetDelete(args)

	// Settings
	case "settings_get":
		return s.handleSettingsGet(args)
	case "settings_set":
		return s.handleSettingsSet(args)

	default:
		return nil, invalidParams("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	resp := &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
		},
	}
	if data != "" {
		resp.Error.Data = data
	}
	return resp
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Grid Handlers ===

// gridInfo summarizes the live grid.
type gridInfo struct {
	Size   int    `json:"size"`
	Opaque int    `json:"opaque_pixels"`
	Preset string `json:"preset,omitempty"`
}

func (s *Server) info() *gridInfo {
	g := s.session.Grid()
	return &gridInfo{Size: g.Size(), Opaque: g.Opaque(), Preset: s.session.Current()}
}

func (s *Server) handleCrosshairInfo(args json.RawMessage) (interface{}, error) {
	return s.info(), nil
}

type pointArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type pixelResult struct {
	X      int          `json:"x"`
	Y      int          `json:"y"`
	Inside bool         `json:"inside"`
	Color  palette.Info `json:"color"`
}

func (s *Server) handleCrosshairGetPixel(args json.RawMessage) (interface{}, error) {
	var a pointArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g := s.session.Grid()
	return &pixelResult{
		X:      a.X,
		Y:      a.Y,
		Inside: inside(g, a.X, a.Y),
		Color:  palette.Describe(g.At(a.X, a.Y)),
	}, nil
}

type setPixelArgs struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color"`
}

func (s *Server) handleCrosshairSetPixel(args json.RawMessage) (interface{}, error) {
	var a setPixelArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	px, err := parseColor(a.Color)
	if err != nil {
		return nil, err
	}

	g := s.session.Grid()
	g.Set(a.X, a.Y, px)
	return &pixelResult{
		X:      a.X,
		Y:      a.Y,
		Inside: inside(g, a.X, a.Y),
		Color:  palette.Describe(g.At(a.X, a.Y)),
	}, nil
}

func (s *Server) handleCrosshairClear(args json.RawMessage) (interface{}, error) {
	s.session.Editor().Cancel()
	s.session.Editor().Clear()
	return s.info(), nil
}

func (s *Server) handleCrosshairResetDefault(args json.RawMessage) (interface{}, error) {
	s.session.Editor().Cancel()
	s.session.Grid().ResetToDefault()
	return s.info(), nil
}

type resizeArgs struct {
	Size int `json:"size"`
}

func (s *Server) handleCrosshairResize(args json.RawMessage) (interface{}, error) {
	var a resizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	s.session.Editor().Cancel()
	if !s.session.Grid().Resize(a.Size) {
		return nil, &paramError{err: fmt.Errorf("cannot resize to %d: %w", a.Size, crosshair.ErrInvalidSize)}
	}
	return s.info(), nil
}

type serializedGrid struct {
	Size int    `json:"size"`
	Data string `json:"data"`
}

func (s *Server) handleCrosshairSerialize(args json.RawMessage) (interface{}, error) {
	g := s.session.Grid()
	return &serializedGrid{Size: g.Size(), Data: g.Serialize()}, nil
}

type deserializeArgs struct {
	Data string `json:"data"`
}

func (s *Server) handleCrosshairDeserialize(args json.RawMessage) (interface{}, error) {
	var a deserializeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	s.session.Editor().Cancel()
	if err := s.session.Grid().Deserialize(a.Data); err != nil {
		return nil, &paramError{err: err}
	}
	return s.info(), nil
}

type renderArgs struct {
	Mode       string  `json:"mode"`
	Scale      float64 `json:"scale"`
	Cell       int     `json:"cell"`
	Background string  `json:"background"`
	Path       string  `json:"path"`
}

type renderResult struct {
	*render.Encoded
	Mode string `json:"mode"`
	Path string `json:"path,omitempty"`
}

// Render modes accepted by crosshair_render.
const (
	renderSnapshot = "snapshot"
	renderCanvas   = "canvas"
	renderCompose  = "compose"
)

func (s *Server) handleCrosshairRender(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Mode == "" {
		a.Mode = renderSnapshot
	}
	if a.Scale == 0 {
		a.Scale = s.session.Settings().CrosshairScale
	}
	if a.Scale < 0 {
		return nil, invalidParams("scale must be positive, got %v", a.Scale)
	}
	if a.Cell == 0 {
		a.Cell = 8
	}
	if a.Cell < 0 {
		return nil, invalidParams("cell must be positive, got %d", a.Cell)
	}

	g := s.session.Grid()
	switch a.Mode {
	case renderSnapshot:
		if err := render.CheckScale(g.Size(), a.Scale); err != nil {
			return nil, &paramError{err: err}
		}
		return s.finishRender(a, render.Snapshot(g, a.Scale))
	case renderCanvas:
		if err := render.CheckCell(g.Size(), a.Cell); err != nil {
			return nil, &paramError{err: err}
		}
		return s.finishRender(a, render.Canvas(g, a.Cell, s.session.Editor().PreviewWrites()))
	case renderCompose:
		if err := render.CheckScale(g.Size(), a.Scale); err != nil {
			return nil, &paramError{err: err}
		}
		if a.Background == "" {
			return nil, invalidParams("compose mode requires a background image path")
		}
		bg, err := s.backgrounds.Load(a.Background)
		if err != nil {
			return nil, err
		}
		return s.finishRender(a, render.Compose(bg, g, a.Scale))
	default:
		return nil, invalidParams("unknown render mode: %s", a.Mode)
	}
}

// finishRender encodes img and, when a path was given, also writes it there.
func (s *Server) finishRender(a renderArgs, img image.Image) (interface{}, error) {
	if a.Path != "" {
		if err := render.SavePNG(a.Path, img); err != nil {
			return nil, err
		}
	}
	enc, err := render.Encode(img)
	if err != nil {
		return nil, err
	}
	return &renderResult{Encoded: enc, Mode: a.Mode, Path: a.Path}, nil
}

// === Editor Handlers ===

// editorState is the editor state plus the draw color in readable form.
type editorState struct {
	editor.State
	ColorInfo palette.Info `json:"color_info"`
}

func (s *Server) state() *editorState {
	st := s.session.Editor().State()
	return &editorState{State: st, ColorInfo: palette.Describe(st.Color)}
}

type setToolArgs struct {
	Tool string `json:"tool"`
}

func (s *Server) handleEditorSetTool(args json.RawMessage) (interface{}, error) {
	var a setToolArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	tool, err := editor.ParseTool(a.Tool)
	if err != nil {
		return nil, &paramError{err: err}
	}
	s.session.Editor().SetTool(tool)
	return s.state(), nil
}

type brushSizeArgs struct {
	Size int `json:"size"`
}

func (s *Server) handleEditorSetBrushSize(args json.RawMessage) (interface{}, error) {
	var a brushSizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	s.session.Editor().SetBrushSize(a.Size)
	return s.state(), nil
}

type colorArgs struct {
	Color string `json:"color"`
}

func (s *Server) handleEditorSetColor(args json.RawMessage) (interface{}, error) {
	var a colorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	px, err := parseColor(a.Color)
	if err != nil {
		return nil, err
	}
	s.session.Editor().SetColor(px)
	return s.state(), nil
}

func (s *Server) handleEditorState(args json.RawMessage) (interface{}, error) {
	return s.state(), nil
}

// strokeResult reports how many cells a call wrote and the editor state
// afterwards.
type strokeResult struct {
	Written int          `json:"written"`
	Opaque  int          `json:"opaque_pixels"`
	State   *editorState `json:"state"`
}

func (s *Server) stroke(writes []editor.Write) *strokeResult {
	return &strokeResult{
		Written: len(writes),
		Opaque:  s.session.Grid().Opaque(),
		State:   s.state(),
	}
}

func (s *Server) handleEditorGesture(args json.RawMessage, step func(*editor.Editor, int, int) []editor.Write) (interface{}, error) {
	var a pointArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.stroke(step(s.session.Editor(), a.X, a.Y)), nil
}

func (s *Server) handleEditorCancel(args json.RawMessage) (interface{}, error) {
	s.session.Editor().Cancel()
	return s.state(), nil
}

type lineArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (s *Server) handleEditorDrawLine(args json.RawMessage) (interface{}, error) {
	var a lineArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.stroke(s.session.Editor().PaintLine(a.X1, a.Y1, a.X2, a.Y2)), nil
}

type shapeArgs struct {
	X1     int  `json:"x1"`
	Y1     int  `json:"y1"`
	X2     int  `json:"x2"`
	Y2     int  `json:"y2"`
	Filled bool `json:"filled"`
}

func (s *Server) handleEditorDrawShape(args json.RawMessage, paint func(*editor.Editor, int, int, int, int, bool) []editor.Write) (interface{}, error) {
	var a shapeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.stroke(paint(s.session.Editor(), a.X1, a.Y1, a.X2, a.Y2, a.Filled)), nil
}

func (s *Server) handlePaletteList(args json.RawMessage) (interface{}, error) {
	return map[string]interface{}{"swatches": palette.Swatches}, nil
}

// === Preset Handlers ===

type presetList struct {
	Presets []string `json:"presets"`
	Current string   `json:"current,omitempty"`
	Dir     string   `json:"dir"`
}

func (s *Server) presetList() (*presetList, error) {
	names, err := s.session.Presets()
	if err != nil {
		return nil, err
	}
	return &presetList{Presets: names, Current: s.session.Current(), Dir: s.session.Store().Dir()}, nil
}

func (s *Server) handlePresetList(args json.RawMessage) (interface{}, error) {
	return s.presetList()
}

type presetArgs struct {
	Name string `json:"name"`
}

func (a presetArgs) validate() error {
	if a.Name == "" {
		return invalidParams("preset name is required")
	}
	return nil
}

func (s *Server) handlePresetSave(args json.RawMessage) (interface{}, error) {
	var a presetArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.SavePreset(a.Name); err != nil {
		if errors.Is(err, preset.ErrEmptyName) {
			return nil, &paramError{err: err}
		}
		return nil, err
	}
	return s.presetList()
}

func (s *Server) handlePresetLoad(args json.RawMessage) (interface{}, error) {
	var a presetArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	if err := s.session.LoadPreset(a.Name); err != nil {
		return nil, err
	}
	return s.info(), nil
}

func (s *Server) handlePresetDelete(args json.RawMessage) (interface{}, error) {
	var a presetArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	if err := s.session.DeletePreset(a.Name); err != nil {
		return nil, err
	}
	return s.presetList()
}

// === Settings Handlers ===

func (s *Server) handleSettingsGet(args json.RawMessage) (interface{}, error) {
	return s.session.Settings(), nil
}

// settingsArgs holds optional updates; nil fields are left unchanged.
type settingsArgs struct {
	StartWithWindows *bool    `json:"start_with_windows"`
	StartMinimized   *bool    `json:"start_minimized"`
	CrosshairScale   *float64 `json:"crosshair_scale"`
}

func (s *Server) handleSettingsSet(args json.RawMessage) (interface{}, error) {
	var a settingsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	st := s.session.Settings()
	if a.StartWithWindows != nil {
		st.StartWithWindows = *a.StartWithWindows
	}
	if a.StartMinimized != nil {
		st.StartMinimized = *a.StartMinimized
	}
	if a.CrosshairScale != nil {
		st.CrosshairScale = *a.CrosshairScale
	}
	s.session.SetSettings(st)

	if err := s.session.SaveSettings(); err != nil {
		return nil, err
	}
	return s.session.Settings(), nil
}

// === Helpers ===

func inside(g *crosshair.Grid, x, y int) bool {
	return x >= 0 && x < g.Size() && y >= 0 && y < g.Size()
}

func parseColor(s string) (crosshair.Pixel, error) {
	px, err := palette.Parse(s)
	if err != nil {
		return crosshair.Pixel{}, &paramError{err: err}
	}
	return px, nil
}
