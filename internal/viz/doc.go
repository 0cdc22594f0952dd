// Package viz renders trajectories in the terminal.
//
// Signals are drawn according to their dimension:
//
//   - 1: an asciigraph line chart against the step index
//   - 2: a braille phase portrait on a [Canvas]
//   - 3: a phase curve projected through a [Camera]
//
// Anything wider is refused with [ErrTooManyDims].
//
// [Run] opens an interactive viewer built on Bubble Tea and blocks until
// the user quits.
//
// # Key Bindings
//
//	Tab   - Cycle signal (x, y, u, norms)
//	[ ]   - Move the step cursor
//	x/y/z - Rotate the 3D camera
//	+ -   - Zoom
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
