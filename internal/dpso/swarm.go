package dpso

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrNoPendingEvaluation is returned when NotifyEvaluation is called without
// a preceding PositionToEvaluate. Use errors.Is to check for this error.
var ErrNoPendingEvaluation = errors.New("no position pending evaluation")

// Params holds the hyperparameters of the discrete PSO algorithm.
// The three weights must lie in [0, 1]: velocities are scaled by
// truncation, so factors above 1 have no discrete meaning.
type Params struct {
	NumParticles       int
	InertiaWeight      float64
	CognitiveParameter float64
	SocialParameter    float64
}

// Swarm coordinates a fixed set of particles through a strict round-robin
// evaluation protocol. The external caller repeatedly asks for the next
// position via PositionToEvaluate, evaluates it with its own cost function
// and reports the result via NotifyEvaluation. Once every particle has been
// evaluated the swarm advances the generation: it commits the iteration best
// into the global best and updates every particle's velocity and position.
//
// A Swarm is not safe for concurrent use; the protocol assumes a single
// logical thread of control evaluating one position at a time.
type Swarm struct {
	w    float64
	phip float64
	phig float64

	particles []*Particle

	bestGlobal      Permutation
	bestGlobalValue float64

	bestIteration      Permutation
	bestIterationValue float64

	// cursor indexes the particle awaiting its evaluation result.
	cursor  int
	pending bool

	generation int

	rng *rand.Rand
}

// NewSwarm creates a swarm of params.NumParticles particles over
// permutations of 1..n. The rng drives particle initialization, the
// randomized difference decompositions and the per-particle update draws;
// seed it for reproducible runs.
func NewSwarm(params Params, n int, rng *rand.Rand) (*Swarm, error) {
	if params.NumParticles <= 0 {
		return nil, fmt.Errorf("number of particles must be positive, got %d", params.NumParticles)
	}
	if n < 1 {
		return nil, fmt.Errorf("permutation length must be at least 1, got %d", n)
	}
	// Weights are checked here so the per-particle velocity scaling in
	// advanceGeneration cannot fail after part of the swarm has moved.
	// The uniform draws lie in [0, 1), so weights in [0, 1] keep every
	// scale factor in range.
	for name, v := range map[string]float64{
		"inertia weight":      params.InertiaWeight,
		"cognitive parameter": params.CognitiveParameter,
		"social parameter":    params.SocialParameter,
	} {
		if !(v >= 0 && v <= 1) {
			return nil, fmt.Errorf("%s must be in [0, 1], got %v", name, v)
		}
	}

	particles := make([]*Particle, params.NumParticles)
	for i := range particles {
		particles[i] = newParticle(n, rng)
	}

	return &Swarm{
		w:                  params.InertiaWeight,
		phip:               params.CognitiveParameter,
		phig:               params.SocialParameter,
		particles:          particles,
		bestGlobalValue:    math.Inf(1),
		bestIterationValue: math.Inf(1),
		rng:                rng,
	}, nil
}

// NumParticles returns the number of particles in the swarm.
func (s *Swarm) NumParticles() int {
	return len(s.particles)
}

// Generation returns the number of completed generation advances.
func (s *Swarm) Generation() int {
	return s.generation
}

// PositionToEvaluate returns a copy of the position awaiting evaluation.
// Calling it again before the matching NotifyEvaluation returns the same
// position.
func (s *Swarm) PositionToEvaluate() Permutation {
	s.pending = true
	return s.particles[s.cursor].Position()
}

// NotifyEvaluation records the cost observed at the position last returned
// by PositionToEvaluate. After the last particle of a round it commits the
// iteration best into the global best and advances every particle's
// generation using fresh uniform draws.
//
// Returns ErrNoPendingEvaluation if no position is pending; the swarm is
// left unchanged in that case.
func (s *Swarm) NotifyEvaluation(value float64) error {
	if !s.pending {
		return ErrNoPendingEvaluation
	}
	s.pending = false

	p := s.particles[s.cursor]
	p.recordEvaluation(value)
	if value < s.bestIterationValue {
		s.bestIteration = p.Position()
		s.bestIterationValue = value
	}

	if s.cursor < len(s.particles)-1 {
		s.cursor++
		return nil
	}

	s.cursor = 0
	if s.bestIterationValue < s.bestGlobalValue {
		s.bestGlobal = s.bestIteration
		s.bestGlobalValue = s.bestIterationValue
	}
	s.bestIteration = nil
	s.bestIterationValue = math.Inf(1)
	return s.advanceGeneration()
}

// advanceGeneration updates every particle's velocity and position using
// fresh cognitive and social draws per particle.
func (s *Swarm) advanceGeneration() error {
	for i, p := range s.particles {
		rp := s.rng.Float64()
		rg := s.rng.Float64()
		if err := p.advance(s.bestGlobal, s.w, s.phip, rp, s.phig, rg, s.rng); err != nil {
			return fmt.Errorf("advance particle %d: %w", i, err)
		}
	}
	s.generation++
	return nil
}

// BestPosition returns a copy of the best position found so far, or nil if
// no evaluation has completed a round yet.
func (s *Swarm) BestPosition() Permutation {
	if s.bestGlobal == nil {
		return nil
	}
	return s.bestGlobal.Clone()
}

// BestValue returns the value of the best position found so far, or +Inf if
// no evaluation has completed a round yet.
func (s *Swarm) BestValue() float64 {
	return s.bestGlobalValue
}
