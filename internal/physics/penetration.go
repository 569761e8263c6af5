package physics

import "github.com/san-kum/circlesim/internal/dynamo"

// contact returns the unit vector pointing from b to a and the distance
// between their centers. Coincident centers fall back to +X.
func contact(a, b dynamo.Vec2, eps float64) (dynamo.Vec2, float64) {
	d := a.Sub(b).Len()
	if d < eps {
		return dynamo.Vec2{X: 1}, d
	}
	return a.Sub(b).Scale(1 / d), d
}

// Separate pushes a and b apart by half the penetration depth each.
//
// a moves first. b then moves along the vector from b to the *updated* a,
// scaled by the original center distance. The asymmetry is deliberate and
// matches the reference motion.
func Separate(a, b *dynamo.Body, p dynamo.Params) {
	dir, d := contact(a.Pos, b.Pos, p.ContactEpsilon)
	overlap := 0.5 * (d - a.Radius - b.Radius)

	if d < p.ContactEpsilon {
		a.Pos = a.Pos.Sub(dir.Scale(overlap))
		b.Pos = b.Pos.Add(dir.Scale(overlap))
		return
	}

	a.Pos = a.Pos.Sub(a.Pos.Sub(b.Pos).Scale(overlap / d))
	b.Pos = b.Pos.Add(a.Pos.Sub(b.Pos).Scale(overlap / d))
}

// ResolvePenetration separates every recorded pair in order.
func ResolvePenetration(s *Store, pairs []dynamo.Pair, p dynamo.Params) {
	for _, pr := range pairs {
		a, okA := s.Body(pr.A)
		b, okB := s.Body(pr.B)
		if !okA || !okB {
			continue
		}
		Separate(a, b, p)
	}
}
