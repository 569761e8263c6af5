package physics

import "github.com/san-kum/circlesim/internal/dynamo"

// Collide exchanges momentum between a and b along their contact normal
// using the 1D elastic formula. Tangential velocity is untouched.
func Collide(a, b *dynamo.Body, p dynamo.Params) {
	fromB, _ := contact(a.Pos, b.Pos, p.ContactEpsilon)
	n := fromB.Scale(-1)
	t := n.Perp()

	nA, nB := a.Vel.Dot(n), b.Vel.Dot(n)
	tA, tB := a.Vel.Dot(t), b.Vel.Dot(t)

	mA, mB := a.Mass, b.Mass
	total := mA + mB
	newA := (nA*(mA-mB) + 2*mB*nB) / total
	newB := (nB*(mB-mA) + 2*mA*nA) / total

	a.Vel = t.Scale(tA).Add(n.Scale(newA))
	b.Vel = t.Scale(tB).Add(n.Scale(newB))
}

// ResolveCollisions applies Collide to every recorded pair in order. A body
// in several pairs is updated several times, each time from its latest
// velocity.
func ResolveCollisions(s *Store, pairs []dynamo.Pair, p dynamo.Params) {
	for _, pr := range pairs {
		a, okA := s.Body(pr.A)
		b, okB := s.Body(pr.B)
		if !okA || !okB {
			continue
		}
		Collide(a, b, p)
	}
}
