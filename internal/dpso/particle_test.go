package dpso

import (
	"errors"
	"math"
	"testing"
)

func TestNewParticle_InitialState(t *testing.T) {
	rng := testRand()
	p := newParticle(8, rng)

	if len(p.x) != 8 {
		t.Fatalf("Expected position of length 8, got %d", len(p.x))
	}
	if p.v.Len() != 0 {
		t.Errorf("Initial velocity should be empty, got %d transpositions", p.v.Len())
	}
	if !math.IsInf(p.bestValue, 1) {
		t.Errorf("Initial best value should be +Inf, got %v", p.bestValue)
	}
	if !p.best.Equal(p.x) {
		t.Errorf("Initial best should equal the initial position")
	}
}

func TestParticle_BestIsSnapshotNotAlias(t *testing.T) {
	rng := testRand()
	p := newParticle(4, rng)

	p.recordEvaluation(3.0)
	snapshot := p.best.Clone()

	// Moving the particle must not drag the personal best along.
	if err := p.advance(Permutation{1, 2, 3, 4}, 0.7, 0.8, 0.5, 0.9, 0.5, rng); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	if !p.best.Equal(snapshot) {
		t.Errorf("Personal best changed after advance: expected %v, got %v", snapshot, p.best)
	}
}

func TestParticle_RecordEvaluationStrictImprovement(t *testing.T) {
	rng := testRand()
	p := newParticle(4, rng)

	if !p.recordEvaluation(5.0) {
		t.Error("First evaluation should always improve on +Inf")
	}
	firstBest := p.best.Clone()

	// Tie does not update
	p.x = p.x.Apply(buildDelta(Transposition{0, 1}))
	if p.recordEvaluation(5.0) {
		t.Error("Tie should not replace the stored best")
	}
	if !p.best.Equal(firstBest) {
		t.Errorf("Best position changed on a tie: expected %v, got %v", firstBest, p.best)
	}

	// Worse value does not update
	if p.recordEvaluation(6.0) {
		t.Error("Worse value should not replace the stored best")
	}

	// Strictly better value does
	if !p.recordEvaluation(4.0) {
		t.Error("Strictly better value should replace the stored best")
	}
	if p.bestValue != 4.0 {
		t.Errorf("Expected best value 4.0, got %v", p.bestValue)
	}
	if !p.best.Equal(p.x) {
		t.Error("Best should snapshot the current position on improvement")
	}
}

func TestParticle_PositionReturnsCopy(t *testing.T) {
	rng := testRand()
	p := newParticle(4, rng)

	pos := p.Position()
	pos[0], pos[1] = pos[1], pos[0]

	if p.x.Equal(pos) {
		t.Error("Mutating the returned position should not affect the particle")
	}
}

func TestParticle_AdvanceKeepsPermutationValid(t *testing.T) {
	rng := testRand()
	p := newParticle(8, rng)
	global := RandomPermutation(8, rng)

	p.recordEvaluation(10.0)

	for gen := 0; gen < 10; gen++ {
		rp := rng.Float64()
		rg := rng.Float64()
		if err := p.advance(global, 0.7, 0.8, rp, 0.9, rg, rng); err != nil {
			t.Fatalf("advance failed at generation %d: %v", gen, err)
		}

		seen := make(map[int]bool)
		for _, v := range p.x {
			if v < 1 || v > 8 || seen[v] {
				t.Fatalf("Generation %d produced an invalid permutation: %v", gen, p.x)
			}
			seen[v] = true
		}
	}
}

func TestParticle_AdvanceNilGlobalSkipsSocialTerm(t *testing.T) {
	rng := testRand()
	p := newParticle(6, rng)
	p.recordEvaluation(2.0)

	if err := p.advance(nil, 0.7, 0.8, 0.5, 0.9, 0.5, rng); err != nil {
		t.Fatalf("advance with nil global best failed: %v", err)
	}
}

func TestParticle_AdvanceScaleErrorLeavesStateUnchanged(t *testing.T) {
	rng := testRand()
	p := newParticle(6, rng)
	p.recordEvaluation(2.0)

	x := p.x.Clone()
	vLen := p.v.Len()

	// phip*rp = 1.5 is outside [0, 1]
	err := p.advance(nil, 0.7, 1.5, 1.0, 0.9, 0.5, rng)
	if !errors.Is(err, ErrScaleRange) {
		t.Fatalf("Expected ErrScaleRange, got %v", err)
	}

	if !p.x.Equal(x) {
		t.Errorf("Position changed after failed advance: expected %v, got %v", x, p.x)
	}
	if p.v.Len() != vLen {
		t.Errorf("Velocity changed after failed advance")
	}
}
