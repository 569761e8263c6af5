package dynamo

import "math"

// BodyID is a stable handle for a body. IDs are never reused.
type BodyID int

// NoBody is the zero selection.
const NoBody BodyID = -1

type Body struct {
	ID     BodyID
	Pos    Vec2
	Vel    Vec2
	Acc    Vec2 // always zero for now; reserved for external forces
	Radius float64
	Mass   float64
}

// IsValid reports whether every kinematic quantity is finite.
func (b Body) IsValid() bool {
	return b.Pos.IsFinite() && b.Vel.IsFinite() && b.Acc.IsFinite() &&
		!math.IsNaN(b.Radius) && !math.IsInf(b.Radius, 0)
}

func (b Body) Contains(p Vec2) bool {
	return b.Pos.Sub(p).LenSq() < b.Radius*b.Radius
}

// Pair is a directed overlapping pair. It lives for one tick.
type Pair struct {
	A, B BodyID
}

// Bounds is the toroidal world: positions live in [0,Width) x [0,Height).
type Bounds struct {
	Width  float64
	Height float64
}

// Params holds the constants used by the integrator, the resolvers and
// the interaction controller.
type Params struct {
	Damping        float64 // velocity decay per tick
	RestEpsilon    float64 // squared speed below which a body is stopped
	ThrowScale     float64 // pointer offset to velocity conversion
	MassDensity    float64 // mass per unit radius
	ContactEpsilon float64 // center distance treated as coincident
	TwoPhase       bool    // detect over a snapshot, then separate
}

func DefaultParams() Params {
	return Params{
		Damping:        0.99,
		RestEpsilon:    0.001,
		ThrowScale:     0.02,
		MassDensity:    100,
		ContactEpsilon: 1e-9,
	}
}

func DefaultBounds() Bounds {
	return Bounds{Width: 800, Height: 450}
}

// Input is one tick of pointer state sampled by a frame driver.
type Input struct {
	Dt                float64 // elapsed milliseconds since the previous tick
	Pointer           Vec2
	PrimaryPressed    bool
	PrimaryReleased   bool
	PrimaryDown       bool
	SecondaryPressed  bool
	SecondaryReleased bool
	CloseRequested    bool
}

// Frame is the read-only result of a tick.
type Frame struct {
	Tick         int
	Time         float64
	Bodies       []Body
	Pairs        []Pair
	Selected     BodyID
	HasSelection bool
	Pointer      Vec2
	FPS          float64
}

// SelectedBody returns the selected body from the snapshot, if any.
func (f Frame) SelectedBody() (Body, bool) {
	if !f.HasSelection {
		return Body{}, false
	}
	for _, b := range f.Bodies {
		if b.ID == f.Selected {
			return b, true
		}
	}
	return Body{}, false
}

// FPSFromDt converts a tick duration in milliseconds to frames per second.
func FPSFromDt(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return 1000 / dt
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}
