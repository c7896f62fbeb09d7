package cmd

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/gabrielhgobi/queenswarm/internal/dpso"
	"github.com/gabrielhgobi/queenswarm/internal/queens"
	"github.com/gabrielhgobi/queenswarm/internal/solve"
	"github.com/gabrielhgobi/queenswarm/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	boardSize int
	particles int
	evals     int
	inertia   float64
	cognitive float64
	social    float64
	seed      int64
	saveRun   bool
	dataDir   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single solver run",
	Long: `Runs the discrete PSO solver against the N-queens objective and prints
the best board found. The loop spends the full evaluation budget; there is
no early stopping.`,
	RunE: runSolver,
}

func init() {
	runCmd.Flags().IntVar(&boardSize, "n", 8, "Board size (permutation length)")
	runCmd.Flags().IntVar(&particles, "particles", 100, "Number of particles")
	runCmd.Flags().IntVar(&evals, "evals", 0, "Evaluation budget (0 = 1000 rounds over the swarm)")
	runCmd.Flags().Float64Var(&inertia, "inertia", 0.7, "Inertia weight")
	runCmd.Flags().Float64Var(&cognitive, "cognitive", 0.8, "Cognitive parameter")
	runCmd.Flags().Float64Var(&social, "social", 0.9, "Social parameter")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "Persist the result under the data directory")
	runCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Base directory for result storage")

	rootCmd.AddCommand(runCmd)
}

func runSolver(cmd *cobra.Command, args []string) error {
	if evals == 0 {
		evals = 1000 * particles
	}

	slog.Info("Starting run", "n", boardSize, "particles", particles, "evals", evals, "seed", seed)

	params := dpso.Params{
		NumParticles:       particles,
		InertiaWeight:      inertia,
		CognitiveParameter: cognitive,
		SocialParameter:    social,
	}
	rng := rand.New(rand.NewSource(seed))

	sw, err := dpso.NewSwarm(params, boardSize, rng)
	if err != nil {
		return fmt.Errorf("failed to build swarm: %w", err)
	}

	start := time.Now()
	result, err := solve.Run(sw, queens.Cost, evals, nil)
	if err != nil {
		return fmt.Errorf("solver run failed: %w", err)
	}
	elapsed := time.Since(start)

	eps := float64(result.Evaluations) / elapsed.Seconds()
	slog.Info("Run complete",
		"elapsed", elapsed,
		"best_value", result.BestValue,
		"generations", result.Generations,
		"evaluations_per_second", fmt.Sprintf("%.0f", eps),
	)

	if result.BestPosition == nil {
		fmt.Println("No position evaluated (empty budget).")
		return nil
	}

	fmt.Printf("Best position: %v\n", result.BestPosition)
	fmt.Printf("Best value: %.0f\n", result.BestValue)
	if queens.Solved(result.BestPosition) {
		fmt.Println("Solved: no two queens attack each other.")
	}
	fmt.Print(queens.Board(result.BestPosition))

	if saveRun {
		runID, err := persistRun(result, elapsed)
		if err != nil {
			return err
		}
		fmt.Printf("Saved result %s\n", runID)
	}

	return nil
}

func persistRun(result *solve.Result, elapsed time.Duration) (string, error) {
	resultStore, err := store.NewFSStore(dataDir)
	if err != nil {
		return "", fmt.Errorf("failed to create result store: %w", err)
	}

	runID := uuid.New().String()
	bestValue := result.BestValue
	if math.IsInf(bestValue, 1) {
		bestValue = math.MaxFloat64
	}

	saved := store.NewRunResult(runID, result.BestPosition, bestValue,
		result.Evaluations, result.Generations, store.RunConfig{
			N:                  boardSize,
			NumParticles:       particles,
			InertiaWeight:      inertia,
			CognitiveParameter: cognitive,
			SocialParameter:    social,
			Evaluations:        evals,
			Seed:               seed,
		})

	if err := resultStore.SaveResult(runID, saved); err != nil {
		return "", fmt.Errorf("failed to save result: %w", err)
	}

	slog.Info("Result saved", "run_id", runID, "elapsed", elapsed)
	return runID, nil
}
