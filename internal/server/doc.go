// Package server implements the MCP (Model Context Protocol) server for crosshair editing.
//
// This package provides a JSON-RPC 2.0 server that exposes one crosshair
// session through the MCP protocol. Clients draw on the live grid with the
// same press, drag and release gestures a pointer would produce, manage
// presets and settings, and fetch PNG renders to look at the result.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Grid Operations:
//   - crosshair_info: Size, drawn pixel count and current preset
//   - crosshair_get_pixel / crosshair_set_pixel: Single cell access
//   - crosshair_clear / crosshair_reset_default: Blank grid or default plus sign
//   - crosshair_resize: Change the grid size, keeping the top-left overlap
//   - crosshair_serialize / crosshair_deserialize: Preset text form
//   - crosshair_render: PNG snapshot, editor canvas or composition over a screenshot
//
// Editor Operations:
//   - editor_set_tool, editor_set_brush_size, editor_set_color, editor_state
//   - editor_press, editor_drag, editor_release, editor_cancel: Pointer gestures
//   - editor_draw_line, editor_draw_rectangle, editor_draw_circle: One-shot shapes
//   - palette_list: Named quick-pick colors
//
// Preset Operations:
//   - preset_list, preset_save, preset_load, preset_delete
//
// Settings:
//   - settings_get, settings_set
//
// # State
//
// All tools act on the session passed to New. Requests are processed one at a
// time in arrival order, so the grid has a single writer.
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC error responses with:
//   - code: -32602 for bad arguments (unknown tool, unparseable color,
//     malformed grid data, non-positive size), -32000 for other tool failures
//     such as I/O errors or a missing preset
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	sess, err := session.Open(session.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close()
//
//	srv := server.New(sess, version, logger)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
