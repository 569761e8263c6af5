// Package physics implements the per-tick circle dynamics:
//
//   - [Store]: the body collection, append-only
//   - [Integrate]: damping, motion, rest snapping and toroidal wrap
//   - [DetectOverlaps], [DetectAndSeparate]: all-pairs overlap scan
//   - [ResolvePenetration]: positional de-penetration along the contact normal
//   - [ResolveCollisions]: elastic impulse along the normal, tangent preserved
//
// Pair detection is O(n²) in the number of bodies. That is intended for
// tens of bodies, not thousands.
//
// # Directed pairs
//
// Both orientations of an overlapping pair are recorded, so every contact
// is separated and collided twice per tick. The second pass sees the
// results of the first.
package physics
