package control

import (
	"math"
	"testing"

	"github.com/san-kum/circlesim/internal/dynamo"
	"github.com/san-kum/circlesim/internal/physics"
)

func newStore(t *testing.T, balls ...[3]float64) *physics.Store {
	t.Helper()
	s := physics.NewStore(100)
	for _, b := range balls {
		if _, err := s.AddBall(b[0], b[1], b[2]); err != nil {
			t.Fatalf("add ball: %v", err)
		}
	}
	return s
}

func TestPickScanOrder(t *testing.T) {
	s := newStore(t, [3]float64{100, 100, 20}, [3]float64{105, 100, 20})

	ctl := NewInteraction(0.02)
	ctl.Apply(s, dynamo.Input{Pointer: dynamo.Vec2{X: 103, Y: 100}, PrimaryPressed: true})

	id, ok := ctl.Selected()
	if !ok || id != 0 {
		t.Errorf("expected body 0 selected, got %d (ok=%v)", id, ok)
	}
}

func TestPickStrictInequality(t *testing.T) {
	s := newStore(t, [3]float64{0, 0, 10})

	tests := []struct {
		name string
		p    dynamo.Vec2
		want dynamo.BodyID
	}{
		{"center", dynamo.Vec2{}, 0},
		{"inside", dynamo.Vec2{X: 6, Y: 7}, 0},
		{"on edge", dynamo.Vec2{X: 10}, dynamo.NoBody},
		{"outside", dynamo.Vec2{X: 20, Y: 20}, dynamo.NoBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pick(s.Bodies(), tt.p); got != tt.want {
				t.Errorf("Pick(%v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

func TestPressOnEmptySpaceClears(t *testing.T) {
	s := newStore(t, [3]float64{50, 50, 10})
	ctl := NewInteraction(0.02)

	ctl.Apply(s, dynamo.Input{Pointer: dynamo.Vec2{X: 50, Y: 50}, SecondaryPressed: true})
	if ctl.State() != Selected {
		t.Fatalf("expected Selected, got %s", ctl.State())
	}

	ctl.Apply(s, dynamo.Input{Pointer: dynamo.Vec2{X: 300, Y: 300}, PrimaryPressed: true})
	if ctl.State() != Idle {
		t.Errorf("expected Idle, got %s", ctl.State())
	}
}

func TestDragFollowsPointer(t *testing.T) {
	s := newStore(t, [3]float64{50, 50, 10})
	ctl := NewInteraction(0.02)

	ctl.Apply(s, dynamo.Input{Pointer: dynamo.Vec2{X: 52, Y: 50}, PrimaryPressed: true, PrimaryDown: true})
	ctl.Apply(s, dynamo.Input{Pointer: dynamo.Vec2{X: 200, Y: 120}, PrimaryDown: true})

	b, _ := s.Body(0)
	if b.Pos != (dynamo.Vec2{X: 200, Y: 120}) {
		t.Errorf("expected body at pointer, got %v", b.Pos)
	}

	ctl.Apply(s, dynamo.Input{Pointer: dynamo.Vec2{X: 210, Y: 120}, PrimaryReleased: true})
	if ctl.State() != Idle {
		t.Errorf("primary release should clear selection")
	}
	if b.Vel != (dynamo.Vec2{}) {
		t.Errorf("drag must not inject velocity, got %v", b.Vel)
	}
	if b.Pos != (dynamo.Vec2{X: 200, Y: 120}) {
		t.Errorf("released body should stay put, got %v", b.Pos)
	}
}

func TestThrowScaling(t *testing.T) {
	s := newStore(t, [3]float64{100, 100, 10})
	ctl := NewInteraction(0.02)

	ctl.Apply(s, dynamo.Input{Pointer: dynamo.Vec2{X: 100, Y: 100}, SecondaryPressed: true})
	ctl.Apply(s, dynamo.Input{Pointer: dynamo.Vec2{X: 200, Y: 100}, SecondaryReleased: true})

	b, _ := s.Body(0)
	if math.Abs(b.Vel.X+2) > 1e-12 || b.Vel.Y != 0 {
		t.Errorf("expected velocity (-2, 0), got %v", b.Vel)
	}
	if ctl.State() != Idle {
		t.Errorf("throw should clear selection")
	}
}

func TestSecondaryReleaseWithoutSelection(t *testing.T) {
	s := newStore(t, [3]float64{100, 100, 10})
	ctl := NewInteraction(0.02)

	ctl.Apply(s, dynamo.Input{Pointer: dynamo.Vec2{X: 200, Y: 100}, SecondaryReleased: true})

	b, _ := s.Body(0)
	if b.Vel != (dynamo.Vec2{}) {
		t.Errorf("no selection should mean no throw, got %v", b.Vel)
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Selected.String() != "selected" || State(7).String() != "unknown" {
		t.Error("unexpected state names")
	}
}
