package sim

import (
	"context"

	"github.com/san-kum/circlesim/internal/dynamo"
)

// Driver is a frame source and sink: a window, a terminal or a script.
type Driver interface {
	Poll() dynamo.Input
	Render(f dynamo.Frame)
}

// Pauser is implemented by drivers that can hold the world still. While
// paused the loop keeps polling and rendering but does not tick.
type Pauser interface {
	Paused() bool
}

// Loop polls the driver, ticks the engine and renders the result until the
// driver asks to close or ctx is done.
func Loop(ctx context.Context, e *Engine, d Driver) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		in := d.Poll()
		if in.CloseRequested {
			return nil
		}
		if p, ok := d.(Pauser); ok && p.Paused() {
			d.Render(e.Frame())
			continue
		}
		d.Render(e.Tick(in))
	}
}
