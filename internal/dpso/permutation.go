package dpso

import "math/rand"

// Permutation represents the position of a particle: an ordered sequence of
// n distinct integers covering 1..n exactly once.
type Permutation []int

// RandomPermutation creates a uniformly shuffled permutation of 1..n.
func RandomPermutation(n int, rng *rand.Rand) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i + 1
	}
	rng.Shuffle(n, func(i, j int) {
		p[i], p[j] = p[j], p[i]
	})
	return p
}

// Clone returns an independent copy of the permutation.
func (p Permutation) Clone() Permutation {
	out := make(Permutation, len(p))
	copy(out, p)
	return out
}

// Equal reports whether p and other hold the same sequence.
func (p Permutation) Equal(other Permutation) bool {
	if len(p) != len(other) {
		return false
	}
	for i, v := range p {
		if v != other[i] {
			return false
		}
	}
	return true
}

// Hamming counts the index positions where p and other differ.
// Both permutations must have the same length.
func (p Permutation) Hamming(other Permutation) int {
	count := 0
	for i, v := range p {
		if v != other[i] {
			count++
		}
	}
	return count
}

// Apply returns a new permutation obtained by applying each transposition of
// d, in order, to a copy of p. The receiver is not modified.
func (p Permutation) Apply(d *Delta) Permutation {
	out := p.Clone()
	for _, t := range d.ops {
		out[t.I], out[t.J] = out[t.J], out[t.I]
	}
	return out
}

// Diff computes a delta that transforms b into a: b.Apply(Diff(a, b, rng))
// equals a. The decomposition is randomized and non-minimal, so two calls
// with identical inputs may return different but equally valid sequences.
//
// The algorithm draws a uniform index until it hits a mismatch, swaps the
// mismatched value into place and records the transposition. Every recorded
// swap strictly increases the number of positions matching a, which
// guarantees termination. For the leftmost mismatch the wanted value always
// sits to its right, so a productive draw always exists.
func Diff(a, b Permutation, rng *rand.Rand) *Delta {
	d := NewDelta()
	working := b.Clone()
	for !working.Equal(a) {
		i := rng.Intn(len(a))
		if a[i] == working[i] {
			continue
		}
		for j := i + 1; j < len(working); j++ {
			if working[j] == a[i] {
				d.Append(Transposition{I: i, J: j})
				working[i], working[j] = working[j], working[i]
				break
			}
		}
	}
	return d
}
