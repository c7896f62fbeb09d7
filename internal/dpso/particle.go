package dpso

import (
	"fmt"
	"math"
	"math/rand"
)

// Particle couples a current position with a velocity and tracks the best
// position and value the particle has individually observed.
type Particle struct {
	x         Permutation
	v         *Delta
	best      Permutation
	bestValue float64
}

// newParticle creates a particle at a random position with an empty velocity.
// The personal best starts as an independent snapshot of the initial
// position with value +Inf, so the first evaluation always improves it.
func newParticle(n int, rng *rand.Rand) *Particle {
	x := RandomPermutation(n, rng)
	return &Particle{
		x:         x,
		v:         NewDelta(),
		best:      x.Clone(),
		bestValue: math.Inf(1),
	}
}

// Position returns a copy of the particle's current position.
func (p *Particle) Position() Permutation {
	return p.x.Clone()
}

// BestValue returns the value of the particle's personal best.
func (p *Particle) BestValue() float64 {
	return p.bestValue
}

// recordEvaluation records the value observed at the current position.
// The personal best is replaced only on strict improvement; ties keep the
// first-found best. The stored best is a snapshot, not an alias of x.
func (p *Particle) recordEvaluation(value float64) bool {
	if value >= p.bestValue {
		return false
	}
	p.best = p.x.Clone()
	p.bestValue = value
	return true
}

// advance recomputes the velocity as the ordered concatenation of the
// inertia, cognitive and social terms, then moves the position:
//
//	v := w*v ++ (phip*rp)*(best - x) ++ (phig*rg)*(global - x)
//	x := x + v
//
// rp and rg are fresh uniform draws in [0, 1) supplied by the caller.
// A nil global best (no finite evaluation has happened yet) skips the
// social term. Scale errors are returned before any state is mutated.
func (p *Particle) advance(global Permutation, w, phip, rp, phig, rg float64, rng *rand.Rand) error {
	inertia, err := p.v.Scale(w)
	if err != nil {
		return fmt.Errorf("inertia term: %w", err)
	}
	cognitive, err := Diff(p.best, p.x, rng).Scale(phip * rp)
	if err != nil {
		return fmt.Errorf("cognitive term: %w", err)
	}
	v := inertia.Concat(cognitive)
	if global != nil {
		social, err := Diff(global, p.x, rng).Scale(phig * rg)
		if err != nil {
			return fmt.Errorf("social term: %w", err)
		}
		v = v.Concat(social)
	}
	p.v = v
	p.x = p.x.Apply(v)
	return nil
}
