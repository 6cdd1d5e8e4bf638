// Package editor implements the crosshair drawing tools.
//
// Rasterizers (brush stamp, Bresenham line, rectangle, midpoint circle) are
// pure functions returning the pixel writes a shape produces; Apply is the
// single dispatch from a tool and a gesture to those writes. Editor adds the
// drawing session on top: selected tool, brush size, draw color and the
// press-drag-release state machine that decides when writes reach the grid.
//
// Nothing here knows about screens or input devices. Callers translate
// pointer positions to grid cells first (see the render package); cells
// outside the grid are accepted and clipped.
package editor
