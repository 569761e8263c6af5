package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/circlesim/internal/dynamo"
)

type scriptedDriver struct {
	inputs   []dynamo.Input
	polled   int
	rendered []dynamo.Frame
	cancel   context.CancelFunc
}

func (d *scriptedDriver) Poll() dynamo.Input {
	if d.polled >= len(d.inputs) {
		if d.cancel != nil {
			d.cancel()
		}
		return dynamo.Input{CloseRequested: d.cancel == nil}
	}
	in := d.inputs[d.polled]
	d.polled++
	return in
}

func (d *scriptedDriver) Render(f dynamo.Frame) {
	d.rendered = append(d.rendered, f)
}

func TestLoopStopsOnClose(t *testing.T) {
	e := newEngine(t, false)
	mustAdd(t, e, 100, 100, 10)

	d := &scriptedDriver{inputs: []dynamo.Input{{Dt: 5}, {Dt: 5}, {Dt: 10}}}
	if err := Loop(context.Background(), e, d); err != nil {
		t.Fatalf("loop: %v", err)
	}

	if len(d.rendered) != 3 {
		t.Fatalf("expected 3 rendered frames, got %d", len(d.rendered))
	}
	last := d.rendered[2]
	if last.Tick != 3 || last.Time != 20 || last.FPS != 100 {
		t.Errorf("unexpected last frame: tick %d time %v fps %v", last.Tick, last.Time, last.FPS)
	}
}

func TestLoopCloseSkipsTick(t *testing.T) {
	e := newEngine(t, false)
	d := &scriptedDriver{inputs: []dynamo.Input{{Dt: 5, CloseRequested: true}}}

	if err := Loop(context.Background(), e, d); err != nil {
		t.Fatalf("loop: %v", err)
	}
	if len(d.rendered) != 0 || e.Frame().Tick != 0 {
		t.Errorf("close request should end the loop before ticking")
	}
}

func TestLoopContextCancel(t *testing.T) {
	e := newEngine(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := &scriptedDriver{inputs: []dynamo.Input{{Dt: 1}}, cancel: cancel}
	err := Loop(ctx, e, d)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type pausedDriver struct {
	scriptedDriver
	paused bool
}

func (d *pausedDriver) Paused() bool { return d.paused }

func TestLoopPaused(t *testing.T) {
	e := newEngine(t, false)
	id := mustAdd(t, e, 100, 100, 10)
	b, _ := e.Store().Body(id)
	b.Vel = dynamo.Vec2{X: 1}

	d := &pausedDriver{
		scriptedDriver: scriptedDriver{inputs: []dynamo.Input{{Dt: 5}, {Dt: 5}}},
		paused:         true,
	}
	if err := Loop(context.Background(), e, d); err != nil {
		t.Fatalf("loop: %v", err)
	}

	if len(d.rendered) != 2 {
		t.Fatalf("paused loop should still render, got %d frames", len(d.rendered))
	}
	if f := e.Frame(); f.Tick != 0 || f.Bodies[0].Pos.X != 100 {
		t.Errorf("paused loop advanced the world: %+v", f)
	}
}
