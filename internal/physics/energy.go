package physics

import "github.com/san-kum/circlesim/internal/dynamo"

func KineticEnergy(bodies []dynamo.Body) float64 {
	ke := 0.0
	for _, b := range bodies {
		ke += 0.5 * b.Mass * b.Vel.LenSq()
	}
	return ke
}

func Momentum(bodies []dynamo.Body) dynamo.Vec2 {
	var p dynamo.Vec2
	for _, b := range bodies {
		p = p.Add(b.Vel.Scale(b.Mass))
	}
	return p
}
