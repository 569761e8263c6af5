package optim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/san-kum/circlesim/internal/automation"
	"github.com/san-kum/circlesim/internal/config"
)

var ErrNoCandidate = errors.New("optim: no parameter combination produced a result")

// GridSearch tries every combination of the given config parameter values
// and keeps the one that minimises a run metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	logger     *log.Logger
}

func NewGridSearch(params []string, ranges [][]float64, logger *log.Logger) *GridSearch {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &GridSearch{paramNames: params, ranges: ranges, logger: logger}
}

// Search runs base once per combination. Combinations that fail to validate
// or that blow up are skipped; cancellation stops the search.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metricName string) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), base, metricName, &best, &bestParams); err != nil {
		return bestParams, best, err
	}
	if bestParams == nil {
		return nil, 0, ErrNoCandidate
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		cfg := base.Clone()
		for k, v := range current {
			if err := cfg.SetParam(k, v); err != nil {
				return err
			}
		}

		result, err := automation.Run(ctx, cfg, nil, nil)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			g.logger.Debug("candidate skipped", "params", current, "err", err)
			return nil
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("optim: unknown metric %q", metricName)
		}
		g.logger.Debug("candidate", "params", current, metricName, val)
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
