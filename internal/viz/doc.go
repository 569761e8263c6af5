// Package viz is the terminal frame driver.
//
// [Model] is a Bubble Tea program that owns a simulation engine, ticks it
// on a timer and draws every body on a Braille [Canvas]. The mouse works
// as in the window: left button drags, right button throws.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to the startup population
//	C     - Toggle contact lines
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	Q     - Quit
package viz
