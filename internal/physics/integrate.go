package physics

import (
	"math"

	"github.com/san-kum/circlesim/internal/dynamo"
)

// Integrate advances every body by dt milliseconds. The order is fixed:
// damp, accelerate, move, snap to rest, wrap.
func Integrate(bodies []dynamo.Body, dt float64, p dynamo.Params, bounds dynamo.Bounds) {
	for i := range bodies {
		b := &bodies[i]

		b.Vel = b.Vel.Scale(p.Damping)
		b.Vel = b.Vel.Add(b.Acc.Scale(dt))
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))

		if b.Vel.LenSq() < p.RestEpsilon {
			b.Vel = dynamo.Vec2{}
		}

		b.Pos.X = Wrap(b.Pos.X, bounds.Width)
		b.Pos.Y = Wrap(b.Pos.Y, bounds.Height)
	}
}

// Wrap maps v onto [0, size). A coordinate one step past an edge comes back
// on the opposite edge at the complementary offset.
func Wrap(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	if v < 0 {
		v += size
	}
	if v >= size {
		v -= size
	}
	if v >= 0 && v < size {
		return v
	}
	// more than one screen in a single tick
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	if v >= size {
		v = 0
	}
	return v
}
