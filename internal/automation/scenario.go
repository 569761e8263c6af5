package automation

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/circlesim/internal/dynamo"
)

type Action string

const (
	PressPrimary     Action = "press-primary"
	ReleasePrimary   Action = "release-primary"
	HoldPrimary      Action = "hold-primary"
	PressSecondary   Action = "press-secondary"
	ReleaseSecondary Action = "release-secondary"
	Move             Action = "move"
)

// Event is a pointer event applied at the start of a tick.
type Event struct {
	Tick   int     `yaml:"tick"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Action Action  `yaml:"action"`
}

// Scenario is a scripted pointer sequence replayed into a headless run.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Events      []Event `yaml:"events"`
}

// LoadScenario loads and validates a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &scenario, nil
}

func (s *Scenario) Validate() error {
	for i, ev := range s.Events {
		if ev.Tick < 0 {
			return fmt.Errorf("event %d: negative tick %d: %w", i, ev.Tick, dynamo.ErrInvalidScenario)
		}
		if math.IsNaN(ev.X) || math.IsInf(ev.X, 0) || math.IsNaN(ev.Y) || math.IsInf(ev.Y, 0) {
			return fmt.Errorf("event %d: non-finite pointer: %w", i, dynamo.ErrInvalidScenario)
		}
		switch ev.Action {
		case PressPrimary, ReleasePrimary, HoldPrimary, PressSecondary, ReleaseSecondary, Move:
		default:
			return fmt.Errorf("event %d: unknown action %q: %w", i, ev.Action, dynamo.ErrInvalidScenario)
		}
	}
	return nil
}

// LastTick is the tick of the latest event, or -1 for an empty script.
func (s *Scenario) LastTick() int {
	last := -1
	for _, ev := range s.Events {
		if ev.Tick > last {
			last = ev.Tick
		}
	}
	return last
}

// InputAt builds the input for a tick. The pointer position and the held
// primary button carry over from prev; edge events never do. Events for
// the same tick apply in script order.
func (s *Scenario) InputAt(tick int, dt float64, prev dynamo.Input) dynamo.Input {
	in := dynamo.Input{
		Dt:          dt,
		Pointer:     prev.Pointer,
		PrimaryDown: prev.PrimaryDown,
	}

	for _, ev := range s.Events {
		if ev.Tick != tick {
			continue
		}
		in.Pointer = dynamo.Vec2{X: ev.X, Y: ev.Y}
		switch ev.Action {
		case PressPrimary:
			in.PrimaryPressed = true
			in.PrimaryDown = true
		case HoldPrimary:
			in.PrimaryDown = true
		case ReleasePrimary:
			in.PrimaryReleased = true
			in.PrimaryDown = false
		case PressSecondary:
			in.SecondaryPressed = true
		case ReleaseSecondary:
			in.SecondaryReleased = true
		}
	}
	return in
}
