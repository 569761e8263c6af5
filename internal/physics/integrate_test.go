package physics

import (
	"math"
	"testing"

	"github.com/san-kum/circlesim/internal/dynamo"
)

func TestIntegrateOrder(t *testing.T) {
	p := dynamo.DefaultParams()
	bounds := dynamo.Bounds{Width: 800, Height: 450}

	bodies := []dynamo.Body{{
		ID:     0,
		Pos:    dynamo.Vec2{X: 100, Y: 100},
		Vel:    dynamo.Vec2{X: 1, Y: -2},
		Radius: 10,
		Mass:   1000,
	}}

	Integrate(bodies, 10, p, bounds)

	wantVX, wantVY := 0.99, -1.98
	if math.Abs(bodies[0].Vel.X-wantVX) > 1e-12 || math.Abs(bodies[0].Vel.Y-wantVY) > 1e-12 {
		t.Errorf("velocity: got %v, want (%v, %v)", bodies[0].Vel, wantVX, wantVY)
	}
	if math.Abs(bodies[0].Pos.X-109.9) > 1e-9 || math.Abs(bodies[0].Pos.Y-80.2) > 1e-9 {
		t.Errorf("position: got %v, want (109.9, 80.2)", bodies[0].Pos)
	}
}

func TestIntegrateRestSnap(t *testing.T) {
	p := dynamo.DefaultParams()
	bounds := dynamo.Bounds{Width: 800, Height: 450}

	// 0.03 * 0.99 = 0.0297, squared < 0.001
	bodies := []dynamo.Body{{Pos: dynamo.Vec2{X: 50, Y: 50}, Vel: dynamo.Vec2{X: 0.03}, Radius: 1, Mass: 100}}
	Integrate(bodies, 1, p, bounds)

	if bodies[0].Vel.X != 0 || bodies[0].Vel.Y != 0 {
		t.Errorf("expected exact zero velocity, got %v", bodies[0].Vel)
	}
	if math.Abs(bodies[0].Pos.X-50.0297) > 1e-9 {
		t.Errorf("body should move before snapping, got x=%v", bodies[0].Pos.X)
	}

	fast := []dynamo.Body{{Pos: dynamo.Vec2{X: 50, Y: 50}, Vel: dynamo.Vec2{X: 0.1}, Radius: 1, Mass: 100}}
	Integrate(fast, 1, p, bounds)
	if fast[0].Vel.X == 0 {
		t.Error("fast body should not snap to rest")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		size float64
		want float64
	}{
		{"inside", 10, 800, 10},
		{"zero", 0, 800, 0},
		{"past right edge", 805, 800, 5},
		{"exactly at size", 800, 800, 0},
		{"past left edge", -5, 800, 795},
		{"several screens", 2450, 800, 50},
		{"several screens negative", -1650, 800, 750},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.v, tt.size)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Wrap(%v, %v) = %v, want %v", tt.v, tt.size, got, tt.want)
			}
			if got < 0 || got >= tt.size {
				t.Errorf("Wrap(%v, %v) = %v out of range", tt.v, tt.size, got)
			}
		})
	}
}

func TestIntegrateWrapInvariant(t *testing.T) {
	p := dynamo.DefaultParams()
	bounds := dynamo.Bounds{Width: 300, Height: 200}

	s := NewStore(p.MassDensity)
	if _, err := Populate(s, Spawn{Count: 15, MinRadius: 5, MaxRadius: 20, InitialSpeed: 3, Seed: 11}, bounds); err != nil {
		t.Fatal(err)
	}

	for tick := 0; tick < 200; tick++ {
		Integrate(s.Bodies(), 16, p, bounds)
		for _, b := range s.Bodies() {
			if b.Pos.X < 0 || b.Pos.X >= bounds.Width || b.Pos.Y < 0 || b.Pos.Y >= bounds.Height {
				t.Fatalf("tick %d: body %d at %v escaped bounds", tick, b.ID, b.Pos)
			}
		}
	}
}

func TestIntegrateDeterminism(t *testing.T) {
	p := dynamo.DefaultParams()
	bounds := dynamo.DefaultBounds()
	dts := []float64{6, 5.5, 7, 6, 6.25, 5.75}

	run := func() []dynamo.Body {
		s := NewStore(p.MassDensity)
		Populate(s, Spawn{Count: 20, MinRadius: 10, MaxRadius: 41, InitialSpeed: 1, Seed: 42}, bounds)
		for i := 0; i < 120; i++ {
			Integrate(s.Bodies(), dts[i%len(dts)], p, bounds)
			pairs := DetectAndSeparate(s, p)
			ResolveCollisions(s, pairs, p)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("body %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}
