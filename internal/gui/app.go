package gui

import (
	"context"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/circlesim/internal/config"
	"github.com/san-kum/circlesim/internal/dynamo"
	"github.com/san-kum/circlesim/internal/metrics"
	"github.com/san-kum/circlesim/internal/sim"
)

var (
	ColBg      = rl.RayWhite
	ColBody    = rl.Black
	ColContact = rl.Red
	ColSelect  = rl.Green
	ColText    = rl.DarkGray
	ColTextDim = rl.Gray
)

const maxTelemetry = 200

// App is the raylib frame driver. Left mouse drags, right mouse throws,
// Space pauses, R resets, C toggles contact lines.
type App struct {
	engine *sim.Engine
	logger *log.Logger

	paused       bool
	showContacts bool
	telemetry    []float64
}

func NewApp(engine *sim.Engine, logger *log.Logger) *App {
	return &App{
		engine:       engine,
		logger:       logger,
		showContacts: true,
		telemetry:    make([]float64, 0, maxTelemetry),
	}
}

// Run opens a window sized to the world and blocks until it is closed.
func Run(engine *sim.Engine, cfg *config.Config, logger *log.Logger) error {
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "circlesim")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.TargetFPS))
	rl.SetExitKey(rl.KeyEscape)

	logger.Info("window opened", "width", cfg.Width, "height", cfg.Height, "fps", cfg.TargetFPS,
		"bodies", engine.Store().Len())

	app := NewApp(engine, logger)
	err := sim.Loop(context.Background(), engine, app)

	logger.Info("window closed", "ticks", engine.Frame().Tick)
	return err
}

func (a *App) Paused() bool { return a.paused }

func (a *App) Poll() dynamo.Input {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
		a.logger.Debug("pause toggled", "paused", a.paused)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.engine.Reset()
		a.telemetry = a.telemetry[:0]
		a.logger.Info("world reset")
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.showContacts = !a.showContacts
	}

	mouse := rl.GetMousePosition()
	return dynamo.Input{
		Dt:                float64(rl.GetFrameTime()) * 1000,
		Pointer:           dynamo.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)},
		PrimaryPressed:    rl.IsMouseButtonPressed(rl.MouseLeftButton),
		PrimaryReleased:   rl.IsMouseButtonReleased(rl.MouseLeftButton),
		PrimaryDown:       rl.IsMouseButtonDown(rl.MouseLeftButton),
		SecondaryPressed:  rl.IsMouseButtonPressed(rl.MouseRightButton),
		SecondaryReleased: rl.IsMouseButtonReleased(rl.MouseRightButton),
		CloseRequested:    rl.WindowShouldClose(),
	}
}

func (a *App) Render(f dynamo.Frame) {
	if !a.paused {
		a.telemetry = append(a.telemetry, metrics.TotalKineticEnergy(f.Bodies))
		if len(a.telemetry) > maxTelemetry {
			a.telemetry = a.telemetry[1:]
		}
	}

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawBodies(f)
	if a.showContacts {
		a.drawContacts(f)
	}
	a.drawSelection(f)
	a.drawHUD(f)

	rl.EndDrawing()
}
