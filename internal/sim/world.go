package sim

import (
	"github.com/charmbracelet/log"

	"github.com/san-kum/circlesim/internal/config"
)

// Build validates cfg and returns an engine holding its startup population.
func Build(cfg *config.Config, logger *log.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := NewEngine(cfg.Params(), cfg.Bounds(), logger)
	if err := e.Populate(cfg.Spawn()); err != nil {
		return nil, err
	}
	return e, nil
}
