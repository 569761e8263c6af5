package physics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/circlesim/internal/dynamo"
)

// Spawn describes the startup population.
type Spawn struct {
	Count        int
	MinRadius    float64
	MaxRadius    float64
	InitialSpeed float64 // upper bound of a random initial speed; 0 keeps bodies at rest
	Seed         int64
}

func DefaultSpawn() Spawn {
	return Spawn{Count: 20, MinRadius: 10, MaxRadius: 41, Seed: 1}
}

func (sp Spawn) Validate() error {
	if sp.Count < 0 {
		return fmt.Errorf("body count %d: %w", sp.Count, dynamo.ErrInvalidConfig)
	}
	if math.IsInf(sp.MaxRadius, 0) || !(sp.MinRadius > 0 && sp.MaxRadius >= sp.MinRadius) {
		return fmt.Errorf("radius range [%v, %v]: %w", sp.MinRadius, sp.MaxRadius, dynamo.ErrInvalidConfig)
	}
	if math.IsInf(sp.InitialSpeed, 0) || !(sp.InitialSpeed >= 0) {
		return fmt.Errorf("initial speed %v: %w", sp.InitialSpeed, dynamo.ErrInvalidConfig)
	}
	return nil
}

// Populate adds sp.Count bodies at random positions inside bounds. The same
// seed always produces the same population.
func Populate(s *Store, sp Spawn, bounds dynamo.Bounds) ([]dynamo.BodyID, error) {
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(sp.Seed))

	ids := make([]dynamo.BodyID, 0, sp.Count)
	for i := 0; i < sp.Count; i++ {
		x := math.Floor(rng.Float64() * bounds.Width)
		y := math.Floor(rng.Float64() * bounds.Height)
		r := sp.MinRadius + rng.Float64()*(sp.MaxRadius-sp.MinRadius)

		id, err := s.AddBall(x, y, r)
		if err != nil {
			return ids, err
		}
		if sp.InitialSpeed > 0 {
			b, _ := s.Body(id)
			angle := rng.Float64() * 2 * math.Pi
			speed := rng.Float64() * sp.InitialSpeed
			b.Vel = dynamo.Vec2{X: speed * math.Cos(angle), Y: speed * math.Sin(angle)}
		}
		ids = append(ids, id)
	}
	return ids, nil
}
