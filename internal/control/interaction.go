package control

import (
	"github.com/san-kum/circlesim/internal/dynamo"
	"github.com/san-kum/circlesim/internal/physics"
)

type State int

const (
	Idle State = iota
	Selected
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selected:
		return "selected"
	default:
		return "unknown"
	}
}

// Interaction turns pointer events into a selection plus either a drag
// (primary button) or a throw (secondary button).
type Interaction struct {
	throwScale float64
	selected   dynamo.BodyID
}

func NewInteraction(throwScale float64) *Interaction {
	return &Interaction{
		throwScale: throwScale,
		selected:   dynamo.NoBody,
	}
}

func (c *Interaction) State() State {
	if c.selected == dynamo.NoBody {
		return Idle
	}
	return Selected
}

// Selected returns the handle of the selected body.
func (c *Interaction) Selected() (dynamo.BodyID, bool) {
	return c.selected, c.selected != dynamo.NoBody
}

func (c *Interaction) Clear() { c.selected = dynamo.NoBody }

// Apply consumes one tick of input. Press, primary release, secondary
// release and primary hold are handled in that order.
func (c *Interaction) Apply(s *physics.Store, in dynamo.Input) {
	if in.PrimaryPressed || in.SecondaryPressed {
		c.selected = Pick(s.Bodies(), in.Pointer)
	}

	if in.PrimaryReleased {
		c.Clear()
	}

	if in.SecondaryReleased {
		if b, ok := c.body(s); ok {
			b.Vel = b.Pos.Sub(in.Pointer).Scale(c.throwScale)
			c.Clear()
		}
	}

	if in.PrimaryDown {
		if b, ok := c.body(s); ok {
			b.Pos = in.Pointer
		}
	}
}

func (c *Interaction) body(s *physics.Store) (*dynamo.Body, bool) {
	if c.selected == dynamo.NoBody {
		return nil, false
	}
	b, ok := s.Body(c.selected)
	if !ok {
		c.Clear()
	}
	return b, ok
}

// Pick returns the first body in storage order containing p, or NoBody.
func Pick(bodies []dynamo.Body, p dynamo.Vec2) dynamo.BodyID {
	for _, b := range bodies {
		if b.Contains(p) {
			return b.ID
		}
	}
	return dynamo.NoBody
}
