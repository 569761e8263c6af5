// Package dynamo provides the core primitives shared by the circle
// simulation:
//
//   - [Body]: a circular point mass with position, velocity and radius
//   - [Params]: the tunable constants of integration and interaction
//   - [Input]: one tick of pointer state supplied by a frame driver
//   - [Frame]: the read-only snapshot handed back for rendering
//   - [Metric], [Observer]: hooks for headless runs
//
// # Units
//
// Elapsed time is measured in milliseconds and positions in screen units,
// so velocities are screen units per millisecond. The numbers are tuned for
// visual stability, not SI calibration.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent mutation. A world is owned
// by a single simulation goroutine.
package dynamo
