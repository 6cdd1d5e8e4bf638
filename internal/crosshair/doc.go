// Package crosshair provides the crosshair pixel grid and its text codec.
//
// A Grid is a square buffer of RGBA pixels stored in row-major order with the
// origin at the top-left corner. It is the single piece of state shared by the
// live overlay and the editor: the editor mutates it in place and every
// presentation layer reads it back through At and Size.
//
// # Coordinate System
//
// All coordinates are 0-based:
//   - X: horizontal position (0 = leftmost cell)
//   - Y: vertical position (0 = topmost cell)
//   - Valid range for both axes is [0, Size())
//
// Reads outside the grid return a fully transparent pixel and writes outside
// the grid are ignored. Neither ever fails.
//
// # Serialization
//
// Serialize produces a single line of comma-separated decimal integers: the
// grid size followed by four channel values (r,g,b,a) per pixel in row-major
// order. For a 2x2 grid:
//
//	2,r0,g0,b0,a0,r1,g1,b1,a1,r2,g2,b2,a2,r3,g3,b3,a3
//
// Deserialize parses the same format strictly and either replaces the whole
// grid or leaves it untouched.
//
// # Thread Safety
//
// Grid carries no locks. It is owned by a single render or request loop and
// must not be mutated from more than one goroutine.
package crosshair
