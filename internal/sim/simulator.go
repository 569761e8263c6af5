package sim

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/san-kum/circlesim/internal/dynamo"
)

// InputSource supplies scripted input for a headless run.
type InputSource interface {
	InputAt(tick int, dt float64, prev dynamo.Input) dynamo.Input
}

type RunConfig struct {
	Dt            float64 // milliseconds per tick
	Ticks         int
	Input         InputSource
	ValidateState bool
}

type Result struct {
	States     [][]dynamo.Body
	Times      []float64
	Contacts   []int
	Metrics    map[string]float64
	StepsTaken int
}

// Simulator drives an Engine at a fixed dt without a window.
type Simulator struct {
	engine    *Engine
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	logger    *log.Logger
}

func New(engine *Engine, logger *log.Logger) *Simulator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{
		engine:    engine,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
		logger:    logger,
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		States:   make([][]dynamo.Body, 0, cfg.Ticks+1),
		Times:    make([]float64, 0, cfg.Ticks+1),
		Contacts: make([]int, 0, cfg.Ticks+1),
		Metrics:  make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	f := s.engine.Frame()
	result.record(f)

	s.logger.Info("run started", "ticks", cfg.Ticks, "dt", cfg.Dt, "bodies", len(f.Bodies))

	var in dynamo.Input
	var runErr error
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		if cfg.Input != nil {
			in = cfg.Input.InputAt(i, cfg.Dt, in)
		} else {
			in = dynamo.Input{Dt: cfg.Dt}
		}

		f = s.engine.Tick(in)

		for _, m := range s.metrics {
			m.Observe(f)
		}
		for _, o := range s.observers {
			o.OnFrame(f)
		}

		if cfg.ValidateState {
			if err := checkFrame(f); err != nil {
				runErr = err
				break
			}
		}

		result.record(f)
		result.StepsTaken++
	}

	s.collect(result)

	if runErr != nil {
		s.logger.Error("run aborted", "err", runErr)
		return result, runErr
	}
	s.logger.Info("run finished", "ticks", result.StepsTaken, "time_ms", f.Time)
	return result, nil
}

func (s *Simulator) collect(r *Result) {
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}

func (r *Result) record(f dynamo.Frame) {
	r.States = append(r.States, f.Bodies)
	r.Times = append(r.Times, f.Time)
	r.Contacts = append(r.Contacts, len(f.Pairs))
}

func validateRunConfig(cfg RunConfig) error {
	if math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) || cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v: %w", cfg.Dt, dynamo.ErrInvalidConfig)
	}
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d: %w", cfg.Ticks, dynamo.ErrInvalidConfig)
	}
	return nil
}

func checkFrame(f dynamo.Frame) error {
	for _, b := range f.Bodies {
		if !b.IsValid() {
			return &dynamo.SimulationError{
				Step:    f.Tick,
				Time:    f.Time,
				Body:    b.ID,
				Wrapped: dynamo.ErrInvalidState,
			}
		}
	}
	return nil
}
