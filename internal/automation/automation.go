package automation

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/circlesim/internal/config"
	"github.com/san-kum/circlesim/internal/metrics"
	"github.com/san-kum/circlesim/internal/physics"
	"github.com/san-kum/circlesim/internal/sim"
)

// Run builds a world from cfg and runs it headless with the standard
// metrics. A nil scenario means no pointer input.
func Run(ctx context.Context, cfg *config.Config, scenario *Scenario, logger *log.Logger) (*sim.Result, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	engine, err := sim.Build(cfg, logger)
	if err != nil {
		return nil, err
	}

	s := sim.New(engine, logger)
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}

	runCfg := sim.RunConfig{
		Dt:            cfg.Dt,
		Ticks:         cfg.Ticks,
		ValidateState: true,
	}
	if scenario != nil {
		runCfg.Input = scenario
	}

	return s.Run(ctx, runCfg)
}

// ParameterSweep runs the same world across a range of one parameter
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue   float64
	FinalEnergy  float64
	MeanEnergy   float64
	MeanContacts float64
	MaxSpeed     float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *log.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := sweep.Base.Clone()
		if err := cfg.SetParam(sweep.ParamName, paramVal); err != nil {
			return results, err
		}

		result, err := Run(ctx, cfg, nil, nil)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		final := result.States[len(result.States)-1]
		results = append(results, SweepResult{
			ParamValue:   paramVal,
			FinalEnergy:  physics.KineticEnergy(final),
			MeanEnergy:   result.Metrics["kinetic_energy"],
			MeanContacts: result.Metrics["contacts"],
			MaxSpeed:     result.Metrics["max_speed"],
		})

		logger.Info("sweep step", "step", i+1, "of", sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}

// MonteCarloConfig runs the same world under many random seeds
type MonteCarloConfig struct {
	Base           *config.Config
	NumTrials      int
	Seed           int64
	SpeedThreshold float64
}

// MonteCarloResult holds one trial
type MonteCarloResult struct {
	TrialID     int
	Seed        int64
	FinalEnergy float64
	MaxSpeed    float64
	Stable      bool // finite and never faster than SpeedThreshold
}

// RunMonteCarlo executes multiple trials with random populations
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, logger *log.Logger) ([]MonteCarloResult, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := cfg.Base.Validate(); err != nil {
		return nil, err
	}
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		world := cfg.Base.Clone()
		world.Seed = rng.Int63()

		result, err := Run(ctx, world, nil, nil)
		if err != nil && ctx.Err() != nil {
			return results, err
		}

		r := MonteCarloResult{TrialID: trial, Seed: world.Seed}
		if result != nil {
			final := result.States[len(result.States)-1]
			r.FinalEnergy = physics.KineticEnergy(final)
			r.MaxSpeed = result.Metrics["max_speed"]
		}
		r.Stable = err == nil && (cfg.SpeedThreshold <= 0 || r.MaxSpeed <= cfg.SpeedThreshold)

		results = append(results, r)

		if (trial+1)%10 == 0 {
			logger.Info("monte carlo", "done", trial+1, "of", cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
