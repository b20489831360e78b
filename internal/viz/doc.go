// Package viz is the terminal front-end: a Bubble Tea program that renders
// the running pattern with half-block or Braille characters next to its
// control panel.
//
//   - [Model]: the program model, built on a [session.Session]
//   - [HalfBlocks] and [Canvas]: raster to terminal conversions
//   - Themes for the surrounding chrome
//
// # Key Bindings
//
//	Space      - Pause/Resume
//	Tab / ↑↓   - Move between controls
//	←→ / h l   - Adjust control (shift for coarse)
//	Enter      - Press button or advance control
//	n / N      - Next/previous pattern
//	p          - Pattern picker
//	s / o      - Save preset / open presets
//	i          - Educational content
//	g          - Toggle GIF recording
//	b          - Toggle Braille rendering
//	t          - Cycle themes
//	R          - Restore defaults
//	?          - Help
package viz
