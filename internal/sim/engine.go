package sim

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/san-kum/circlesim/internal/control"
	"github.com/san-kum/circlesim/internal/dynamo"
	"github.com/san-kum/circlesim/internal/physics"
)

// Engine owns the body store and the interaction controller and advances
// them one tick at a time. It is not safe for concurrent use.
type Engine struct {
	store  *physics.Store
	ctl    *control.Interaction
	params dynamo.Params
	bounds dynamo.Bounds
	logger *log.Logger

	tick    int
	time    float64
	pointer dynamo.Vec2
	fps     float64
	pairs   []dynamo.Pair
	initial []dynamo.Body
}

func NewEngine(params dynamo.Params, bounds dynamo.Bounds, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		store:  physics.NewStore(params.MassDensity),
		ctl:    control.NewInteraction(params.ThrowScale),
		params: params,
		bounds: bounds,
		logger: logger,
	}
}

func (e *Engine) AddBall(x, y, radius float64) (dynamo.BodyID, error) {
	id, err := e.store.AddBall(x, y, radius)
	if err != nil {
		return id, err
	}
	e.initial = e.store.Snapshot()
	return id, nil
}

// Populate adds the startup population described by sp.
func (e *Engine) Populate(sp physics.Spawn) error {
	ids, err := physics.Populate(e.store, sp, e.bounds)
	e.initial = e.store.Snapshot()
	if err != nil {
		return err
	}
	e.logger.Debug("populated world", "bodies", len(ids), "seed", sp.Seed,
		"width", e.bounds.Width, "height", e.bounds.Height)
	return nil
}

// Tick runs one simulation step: interaction, integration, overlap
// detection, penetration resolution and collision resolution, in that
// order.
func (e *Engine) Tick(in dynamo.Input) dynamo.Frame {
	e.ctl.Apply(e.store, in)

	physics.Integrate(e.store.Bodies(), in.Dt, e.params, e.bounds)

	if e.params.TwoPhase {
		e.pairs = physics.DetectOverlaps(e.store.Snapshot())
		physics.ResolvePenetration(e.store, e.pairs, e.params)
	} else {
		e.pairs = physics.DetectAndSeparate(e.store, e.params)
	}

	physics.ResolveCollisions(e.store, e.pairs, e.params)

	e.tick++
	e.time += in.Dt
	e.pointer = in.Pointer
	e.fps = dynamo.FPSFromDt(in.Dt)

	return e.Frame()
}

// Frame returns a copy of the current world.
func (e *Engine) Frame() dynamo.Frame {
	sel, ok := e.ctl.Selected()
	pairs := make([]dynamo.Pair, len(e.pairs))
	copy(pairs, e.pairs)
	return dynamo.Frame{
		Tick:         e.tick,
		Time:         e.time,
		Bodies:       e.store.Snapshot(),
		Pairs:        pairs,
		Selected:     sel,
		HasSelection: ok,
		Pointer:      e.pointer,
		FPS:          e.fps,
	}
}

// Reset puts every body back where it was after population and drops the
// selection.
func (e *Engine) Reset() {
	e.store.Restore(e.initial)
	e.ctl.Clear()
	e.tick = 0
	e.time = 0
	e.fps = 0
	e.pairs = nil
	e.logger.Debug("world reset", "bodies", e.store.Len())
}

func (e *Engine) Store() *physics.Store { return e.store }

func (e *Engine) Params() dynamo.Params { return e.params }

func (e *Engine) Bounds() dynamo.Bounds { return e.bounds }

func (e *Engine) Interaction() *control.Interaction { return e.ctl }
