package automation

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/circlesim/internal/config"
	"github.com/san-kum/circlesim/internal/dynamo"
)

func smallWorld() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Bodies = 6
	cfg.InitialSpeed = 1
	cfg.Ticks = 50
	return cfg
}

func TestRunWithScenario(t *testing.T) {
	cfg := smallWorld()
	cfg.Bodies = 0
	cfg.Ticks = 4

	sc, err := LoadScenario(writeScenario(t, throwYAML))
	if err != nil {
		t.Fatal(err)
	}

	// no bodies: the script runs but has nothing to grab
	result, err := Run(context.Background(), cfg, sc, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.StepsTaken != 4 {
		t.Errorf("expected 4 steps, got %d", result.StepsTaken)
	}
	for _, name := range []string{"kinetic_energy", "contacts", "max_speed", "momentum"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("metric %s missing", name)
		}
	}
	if result.Metrics["control_effort"] != 0 {
		t.Errorf("nothing to select, got effort %v", result.Metrics["control_effort"])
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := smallWorld()
	cfg.Dt = 0
	if _, err := Run(context.Background(), cfg, nil, nil); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Base:      smallWorld(),
		ParamName: "damping",
		ParamMin:  0.9,
		ParamMax:  1.0,
		NumSteps:  3,
	}

	results, err := RunSweep(context.Background(), sweep, nil)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	want := []float64{0.9, 0.95, 1.0}
	for i, r := range results {
		if math.Abs(r.ParamValue-want[i]) > 1e-12 {
			t.Errorf("step %d: expected %v, got %v", i, want[i], r.ParamValue)
		}
	}
	if results[0].MeanEnergy > results[2].MeanEnergy {
		t.Errorf("heavier damping should not keep more energy: %v vs %v",
			results[0].MeanEnergy, results[2].MeanEnergy)
	}
	if sweep.Base.Damping != 0.99 {
		t.Error("sweep mutated its base config")
	}
}

func TestRunSweepUnknownParam(t *testing.T) {
	sweep := &ParameterSweep{Base: smallWorld(), ParamName: "gravity", NumSteps: 2}
	if _, err := RunSweep(context.Background(), sweep, nil); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRunMonteCarlo(t *testing.T) {
	mc := &MonteCarloConfig{
		Base:           smallWorld(),
		NumTrials:      4,
		Seed:           7,
		SpeedThreshold: 1e6,
	}

	results, err := RunMonteCarlo(context.Background(), mc, nil)
	if err != nil {
		t.Fatalf("monte carlo: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 trials, got %d", len(results))
	}

	stable, unstable := MonteCarloStats(results)
	if stable != 4 || unstable != 0 {
		t.Errorf("expected all trials stable, got %d/%d", stable, unstable)
	}

	again, _ := RunMonteCarlo(context.Background(), mc, nil)
	for i := range results {
		if results[i].Seed != again[i].Seed || results[i].FinalEnergy != again[i].FinalEnergy {
			t.Errorf("trial %d not reproducible", i)
		}
	}
}
