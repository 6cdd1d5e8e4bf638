// Package render turns crosshair grids into pixels on a screen or in an image.
//
// The package implements two contracts shared by every front end:
//
// # Presentation
//
// Draw visits all size x size cells in row-major order, skips cells whose
// alpha is 0, and fills each remaining cell as an axis-aligned square of side
// scale. The squares are positioned so the whole grid is centered on the
// anchor point. Everything that shows a crosshair goes through Draw or through
// a helper with identical geometry: Snapshot, Compose and the framebuffer
// Overlay.
//
// # Input Translation
//
// CellAt maps a pointer position to grid coordinates using
// floor((pointer - origin) / cell). Coordinates outside the grid are still
// returned, flagged as not inside, so callers may pass them to the editor,
// which clips every write.
//
// # Images
//
// Snapshot and Compose produce *image.NRGBA values with
// github.com/disintegration/imaging. Canvas draws the editor view: a
// checkerboard behind transparent cells, a border around every cell and the
// in-progress shape at half alpha. SavePNG and LoadImage read and write image
// files through github.com/anthonynsimon/bild/imgio.
package render
