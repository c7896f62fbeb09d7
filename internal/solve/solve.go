package solve

import (
	"fmt"
	"log/slog"

	"github.com/gabrielhgobi/queenswarm/internal/dpso"
)

// Result holds the output of a solver run.
type Result struct {
	BestPosition []int
	BestValue    float64
	Evaluations  int
	Generations  int
}

// ProgressFunc is invoked whenever the swarm-wide best improves.
type ProgressFunc func(evaluations int, bestValue float64)

// CostFunc evaluates a candidate permutation; lower is better.
type CostFunc func(perm []int) float64

// Run drives the swarm through a fixed number of cost evaluations using the
// strict get-evaluate-notify protocol. The cost function is treated as a
// black box; evaluation happens entirely on the caller's side of the swarm
// boundary. There is no early stopping: the full budget is always spent.
func Run(sw *dpso.Swarm, cost CostFunc, evaluations int, progress ProgressFunc) (*Result, error) {
	if evaluations < 0 {
		return nil, fmt.Errorf("evaluation budget must be non-negative, got %d", evaluations)
	}

	slog.Info("Starting solver run",
		"particles", sw.NumParticles(),
		"evaluations", evaluations,
	)

	prevBest := sw.BestValue()
	for i := 0; i < evaluations; i++ {
		position := sw.PositionToEvaluate()
		value := cost(position)
		if err := sw.NotifyEvaluation(value); err != nil {
			return nil, fmt.Errorf("evaluation %d: %w", i, err)
		}

		if best := sw.BestValue(); best < prevBest {
			prevBest = best
			slog.Debug("Global best improved", "evaluation", i+1, "best_value", best)
			if progress != nil {
				progress(i+1, best)
			}
		}
	}

	result := &Result{
		BestPosition: sw.BestPosition(),
		BestValue:    sw.BestValue(),
		Evaluations:  evaluations,
		Generations:  sw.Generation(),
	}

	slog.Info("Solver run complete",
		"best_value", result.BestValue,
		"generations", result.Generations,
	)

	return result, nil
}
