package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/circlesim/internal/dynamo"
)

func TestMaxSpeed(t *testing.T) {
	m := NewMaxSpeed()
	m.Observe(frame(moving(3, 4, 1), moving(1, 0, 1)))
	m.Observe(frame(moving(0, 2, 1)))

	if m.Value() != 5 {
		t.Errorf("expected 5, got %v", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected 0 after reset")
	}
}

func TestStability(t *testing.T) {
	tests := []struct {
		name   string
		frames []dynamo.Frame
		want   float64
	}{
		{"no samples", nil, 1},
		{"all calm", []dynamo.Frame{frame(moving(1, 0, 1)), frame(moving(0, 1, 1))}, 1},
		{"one fast", []dynamo.Frame{frame(moving(1, 0, 1)), frame(moving(20, 0, 1))}, 0.5},
		{"nan", []dynamo.Frame{frame(moving(math.NaN(), 0, 1))}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStability(10)
			for _, f := range tt.frames {
				m.Observe(f)
			}
			if got := m.Value(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestContactsAndControlEffort(t *testing.T) {
	c := NewContacts()
	e := NewControlEffort()

	frames := []dynamo.Frame{
		{Pairs: []dynamo.Pair{{A: 0, B: 1}, {A: 1, B: 0}}, HasSelection: true},
		{},
		{Pairs: []dynamo.Pair{{A: 2, B: 3}}},
		{HasSelection: true},
	}
	for _, f := range frames {
		c.Observe(f)
		e.Observe(f)
	}

	if c.Value() != 0.75 {
		t.Errorf("expected 0.75 contacts per frame, got %v", c.Value())
	}
	if e.Value() != 0.5 {
		t.Errorf("expected control effort 0.5, got %v", e.Value())
	}
}

func TestStandardNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Standard() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric name %q", m.Name())
		}
		seen[m.Name()] = true
	}
}
