package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/circlesim/internal/dynamo"
)

// Store owns the simulated bodies. Bodies are never removed, so a BodyID
// stays valid for the life of the store.
type Store struct {
	bodies  []dynamo.Body
	density float64
}

func NewStore(massDensity float64) *Store {
	return &Store{density: massDensity}
}

// AddBall creates a resting body and returns its handle.
func (s *Store) AddBall(x, y, radius float64) (dynamo.BodyID, error) {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return dynamo.NoBody, fmt.Errorf("radius %v: %w", radius, dynamo.ErrInvalidBody)
	}
	pos := dynamo.Vec2{X: x, Y: y}
	if !pos.IsFinite() {
		return dynamo.NoBody, fmt.Errorf("position (%v, %v): %w", x, y, dynamo.ErrInvalidBody)
	}
	mass := radius * s.density
	if !(mass > 0) || math.IsInf(mass, 0) {
		return dynamo.NoBody, fmt.Errorf("mass %v: %w", mass, dynamo.ErrInvalidBody)
	}

	id := dynamo.BodyID(len(s.bodies))
	s.bodies = append(s.bodies, dynamo.Body{
		ID:     id,
		Pos:    pos,
		Radius: radius,
		Mass:   mass,
	})
	return id, nil
}

func (s *Store) Len() int { return len(s.bodies) }

// Body looks a body up by handle. The pointer is only good until the next
// AddBall.
func (s *Store) Body(id dynamo.BodyID) (*dynamo.Body, bool) {
	i := int(id)
	if i < 0 || i >= len(s.bodies) || s.bodies[i].ID != id {
		return nil, false
	}
	return &s.bodies[i], true
}

// Bodies exposes the live slice in storage order.
func (s *Store) Bodies() []dynamo.Body { return s.bodies }

func (s *Store) Snapshot() []dynamo.Body {
	c := make([]dynamo.Body, len(s.bodies))
	copy(c, s.bodies)
	return c
}

// Restore overwrites the kinematics of every body from a snapshot taken
// from this store. Bodies in the snapshot that the store does not know are
// ignored.
func (s *Store) Restore(snap []dynamo.Body) {
	for _, b := range snap {
		if cur, ok := s.Body(b.ID); ok {
			*cur = b
		}
	}
}
