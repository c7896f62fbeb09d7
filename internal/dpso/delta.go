package dpso

import (
	"errors"
	"fmt"
	"math"
)

// ErrScaleRange is returned when a fractional scale factor falls outside [0, 1].
// Use errors.Is(err, ErrScaleRange) to check for this error.
var ErrScaleRange = errors.New("scale factor out of range [0, 1]")

// Transposition is a pair of positions whose held values are to be swapped.
type Transposition struct {
	I int
	J int
}

// Delta represents the velocity of a particle: an ordered sequence of
// transpositions that transforms one permutation toward another when applied.
//
// Transpositions are kept in insertion order. Appending a pair that is
// already present is a no-op: the pair keeps its first insertion position.
type Delta struct {
	ops  []Transposition
	seen map[Transposition]struct{}
}

// NewDelta creates an empty delta.
func NewDelta() *Delta {
	return &Delta{seen: make(map[Transposition]struct{})}
}

// Append adds a transposition at the end of the delta.
// Duplicate pairs are ignored, preserving the original position.
// The zero value of Delta is an empty delta ready to use.
func (d *Delta) Append(t Transposition) {
	if _, ok := d.seen[t]; ok {
		return
	}
	if d.seen == nil {
		d.seen = make(map[Transposition]struct{})
	}
	d.ops = append(d.ops, t)
	d.seen[t] = struct{}{}
}

// Len returns the number of transpositions in the delta.
func (d *Delta) Len() int {
	return len(d.ops)
}

// Transpositions returns a copy of the transposition sequence in order.
func (d *Delta) Transpositions() []Transposition {
	out := make([]Transposition, len(d.ops))
	copy(out, d.ops)
	return out
}

// Truncate returns a new delta holding only the first k transpositions.
// Like a slice expression, k is clamped to [0, Len()].
func (d *Delta) Truncate(k int) *Delta {
	if k < 0 {
		k = 0
	}
	if k > len(d.ops) {
		k = len(d.ops)
	}
	out := NewDelta()
	for _, t := range d.ops[:k] {
		out.Append(t)
	}
	return out
}

// Scale returns a new delta holding the first round(r * Len()) transpositions,
// rounding half to even. Scaling a delta is the discrete counterpart of
// scaling a velocity vector: fractional transposition counts are not
// meaningful, so the sequence is truncated instead.
//
// Returns ErrScaleRange if r is outside [0, 1]; the receiver is not modified.
func (d *Delta) Scale(r float64) (*Delta, error) {
	if r < 0.0 || r > 1.0 || math.IsNaN(r) {
		return nil, fmt.Errorf("%w: %.2f", ErrScaleRange, r)
	}
	k := int(math.RoundToEven(r * float64(len(d.ops))))
	return d.Truncate(k), nil
}

// Concat returns a new delta with other's transpositions appended after the
// receiver's, preserving order. A pair present in both keeps its position
// in the receiver.
func (d *Delta) Concat(other *Delta) *Delta {
	out := NewDelta()
	for _, t := range d.ops {
		out.Append(t)
	}
	for _, t := range other.ops {
		out.Append(t)
	}
	return out
}
