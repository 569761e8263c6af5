package physics

import "github.com/san-kum/circlesim/internal/dynamo"

// Overlaps reports whether two circles touch or intersect. The test is
// symmetric in its arguments.
func Overlaps(a, b dynamo.Body) bool {
	r := a.Radius + b.Radius
	return a.Pos.Sub(b.Pos).LenSq() <= r*r
}

// DetectOverlaps scans every ordered pair of distinct bodies and returns
// the overlapping ones. An overlapping unordered pair shows up twice, once
// per orientation. The input is not modified.
func DetectOverlaps(bodies []dynamo.Body) []dynamo.Pair {
	var pairs []dynamo.Pair
	for i := range bodies {
		for j := range bodies {
			if bodies[i].ID == bodies[j].ID {
				continue
			}
			if Overlaps(bodies[i], bodies[j]) {
				pairs = append(pairs, dynamo.Pair{A: bodies[i].ID, B: bodies[j].ID})
			}
		}
	}
	return pairs
}

// DetectAndSeparate runs the same scan as DetectOverlaps but separates each
// pair the moment it is found, so tests later in the scan see the moved
// positions.
func DetectAndSeparate(s *Store, p dynamo.Params) []dynamo.Pair {
	bodies := s.Bodies()
	var pairs []dynamo.Pair
	for i := range bodies {
		for j := range bodies {
			a, b := &bodies[i], &bodies[j]
			if a.ID == b.ID {
				continue
			}
			if Overlaps(*a, *b) {
				pairs = append(pairs, dynamo.Pair{A: a.ID, B: b.ID})
				Separate(a, b, p)
			}
		}
	}
	return pairs
}
