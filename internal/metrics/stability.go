package metrics

import (
	"math"

	"github.com/san-kum/circlesim/internal/dynamo"
)

// MaxSpeed reports the fastest body speed seen in any frame.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (s *MaxSpeed) Name() string { return s.name }

func (s *MaxSpeed) Observe(f dynamo.Frame) {
	for _, b := range f.Bodies {
		s.max = math.Max(s.max, b.Vel.Len())
	}
}

func (s *MaxSpeed) Value() float64 { return s.max }

func (s *MaxSpeed) Reset() { s.max = 0 }

// Stability is the fraction of frames in which every body is finite and
// slower than threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f dynamo.Frame) {
	s.samples++
	for _, b := range f.Bodies {
		if !b.IsValid() || b.Vel.Len() > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
