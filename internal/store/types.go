package store

import "time"

// RunConfig holds the configuration of a solver run. It is persisted with
// the result so a listing can show how each best position was obtained.
type RunConfig struct {
	N                  int     `json:"n"`
	NumParticles       int     `json:"numParticles"`
	InertiaWeight      float64 `json:"inertiaWeight"`
	CognitiveParameter float64 `json:"cognitiveParameter"`
	SocialParameter    float64 `json:"socialParameter"`
	Evaluations        int     `json:"evaluations"`
	Seed               int64   `json:"seed"`
}

// RunResult is the persisted outcome of a solver run: the best position and
// value found within the evaluation budget, plus the configuration that
// produced them. Only the final outcome is stored; the search history is
// deliberately not persisted.
type RunResult struct {
	// RunID uniquely identifies the run.
	RunID string `json:"runId"`

	// BestPosition is the best permutation found, or nil if the run never
	// completed an evaluation round.
	BestPosition []int `json:"bestPosition,omitempty"`

	// BestValue is the cost achieved by BestPosition. A missing best is
	// stored as the largest finite float64, since JSON cannot carry +Inf.
	BestValue float64 `json:"bestValue"`

	// Evaluations is the number of cost evaluations spent.
	Evaluations int `json:"evaluations"`

	// Generations is the number of full swarm rounds completed.
	Generations int `json:"generations"`

	// Timestamp records when the result was produced.
	Timestamp time.Time `json:"timestamp"`

	// Config is the run configuration.
	Config RunConfig `json:"config"`
}

// ResultInfo contains metadata about a saved result without the position
// payload, for efficient listing.
type ResultInfo struct {
	RunID        string    `json:"runId"`
	BestValue    float64   `json:"bestValue"`
	N            int       `json:"n"`
	NumParticles int       `json:"numParticles"`
	Evaluations  int       `json:"evaluations"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewRunResult creates a result from run state.
func NewRunResult(runID string, bestPosition []int, bestValue float64, evaluations, generations int, config RunConfig) *RunResult {
	return &RunResult{
		RunID:        runID,
		BestPosition: bestPosition,
		BestValue:    bestValue,
		Evaluations:  evaluations,
		Generations:  generations,
		Timestamp:    time.Now(),
		Config:       config,
	}
}

// ToInfo converts a full RunResult to its metadata-only form.
func (r *RunResult) ToInfo() ResultInfo {
	return ResultInfo{
		RunID:        r.RunID,
		BestValue:    r.BestValue,
		N:            r.Config.N,
		NumParticles: r.Config.NumParticles,
		Evaluations:  r.Evaluations,
		Timestamp:    r.Timestamp,
	}
}

// Validate checks that the result is internally consistent.
func (r *RunResult) Validate() error {
	if r.RunID == "" {
		return &ValidationError{Field: "runId", Reason: "must not be empty"}
	}
	if r.Config.N < 1 {
		return &ValidationError{Field: "config.n", Reason: "must be at least 1"}
	}
	if r.Config.NumParticles <= 0 {
		return &ValidationError{Field: "config.numParticles", Reason: "must be positive"}
	}
	if r.Evaluations < 0 {
		return &ValidationError{Field: "evaluations", Reason: "must be non-negative"}
	}
	if r.BestPosition != nil {
		if len(r.BestPosition) != r.Config.N {
			return &ValidationError{Field: "bestPosition", Reason: "length must match config.n"}
		}
		seen := make(map[int]bool, len(r.BestPosition))
		for _, v := range r.BestPosition {
			if v < 1 || v > r.Config.N || seen[v] {
				return &ValidationError{Field: "bestPosition", Reason: "must be a permutation of 1..n"}
			}
			seen[v] = true
		}
	}
	return nil
}
