package metrics

import (
	"math"

	"github.com/san-kum/circlesim/internal/dynamo"
	"github.com/san-kum/circlesim/internal/physics"
)

// TotalKineticEnergy is the sum of 0.5 m |v|^2 over all bodies.
func TotalKineticEnergy(bodies []dynamo.Body) float64 {
	return physics.KineticEnergy(bodies)
}

// TotalMomentum is the vector sum of m v over all bodies.
func TotalMomentum(bodies []dynamo.Body) dynamo.Vec2 {
	return physics.Momentum(bodies)
}

// KineticEnergy reports the mean total kinetic energy over observed frames.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(f dynamo.Frame) {
	e.total += TotalKineticEnergy(f.Bodies)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative change of total kinetic energy
// against the first observed frame. Damping makes it grow on a free run;
// a sudden jump points at a throw or a bad contact.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f dynamo.Frame) {
	energy := TotalKineticEnergy(f.Bodies)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// Momentum reports the largest total momentum magnitude seen.
type Momentum struct {
	name string
	max  float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(f dynamo.Frame) {
	m.max = math.Max(m.max, TotalMomentum(f.Bodies).Len())
}

func (m *Momentum) Value() float64 { return m.max }

func (m *Momentum) Reset() { m.max = 0 }
