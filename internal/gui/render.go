package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/circlesim/internal/dynamo"
)

func (a *App) drawBodies(f dynamo.Frame) {
	for _, b := range f.Bodies {
		rl.DrawCircleLines(int32(b.Pos.X), int32(b.Pos.Y), float32(b.Radius), ColBody)
	}
}

func (a *App) drawContacts(f dynamo.Frame) {
	byID := make(map[dynamo.BodyID]dynamo.Vec2, len(f.Bodies))
	for _, b := range f.Bodies {
		byID[b.ID] = b.Pos
	}
	for _, p := range f.Pairs {
		pa, okA := byID[p.A]
		pb, okB := byID[p.B]
		if !okA || !okB {
			continue
		}
		rl.DrawLine(int32(pa.X), int32(pa.Y), int32(pb.X), int32(pb.Y), ColContact)
	}
}

func (a *App) drawSelection(f dynamo.Frame) {
	b, ok := f.SelectedBody()
	if !ok {
		return
	}
	rl.DrawLine(int32(b.Pos.X), int32(b.Pos.Y), int32(f.Pointer.X), int32(f.Pointer.Y), ColSelect)
}

func (a *App) drawHUD(f dynamo.Frame) {
	rl.DrawText(fmt.Sprintf("FPS: %.0f", f.FPS), 10, 10, 20, ColText)
	rl.DrawText(fmt.Sprintf("bodies %d  contacts %d", len(f.Bodies), len(f.Pairs)), 10, 34, 10, ColTextDim)
	if a.paused {
		rl.DrawText("PAUSED", 10, 48, 10, ColContact)
	}
	a.drawTelemetry(10, int32(rl.GetScreenHeight())-50, 200, 40)
}

// drawTelemetry plots recent kinetic energy as a polyline scaled to its
// own maximum.
func (a *App) drawTelemetry(x, y, w, h int32) {
	if len(a.telemetry) < 2 {
		return
	}
	peak := 0.0
	for _, v := range a.telemetry {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	rl.DrawRectangleLines(x, y, w, h, ColTextDim)
	step := float32(w) / float32(maxTelemetry-1)
	for i := 1; i < len(a.telemetry); i++ {
		x0 := float32(x) + float32(i-1)*step
		x1 := float32(x) + float32(i)*step
		y0 := float32(y+h) - float32(a.telemetry[i-1]/peak)*float32(h)
		y1 := float32(y+h) - float32(a.telemetry[i]/peak)*float32(h)
		rl.DrawLineV(rl.NewVector2(x0, y0), rl.NewVector2(x1, y1), ColTextDim)
	}
}
