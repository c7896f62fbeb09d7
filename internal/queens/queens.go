// Package queens provides the N-queens diagonal-conflict objective used to
// exercise the discrete PSO solver. A candidate board is a permutation of
// 1..n giving the column of the queen in each row, which rules out row and
// column attacks by construction; only diagonal conflicts remain.
package queens

import "strings"

// Conflicts counts the pairs of queens that attack each other diagonally:
// rows i != j with |perm[i]-perm[j]| == |i-j|. Each pair is counted once.
func Conflicts(perm []int) int {
	count := 0
	for i, qi := range perm {
		for j, qj := range perm {
			if i != j && abs(qi-qj) == abs(i-j) {
				count++
			}
		}
	}
	return count / 2
}

// Cost is Conflicts as a float64, suitable as a swarm objective.
func Cost(perm []int) float64 {
	return float64(Conflicts(perm))
}

// Solved reports whether the board has no diagonal conflicts.
func Solved(perm []int) bool {
	return Conflicts(perm) == 0
}

// Board renders the placement as an ASCII board, one row per line with a
// Q marking the queen's column.
func Board(perm []int) string {
	n := len(perm)
	var b strings.Builder
	for _, q := range perm {
		for col := 1; col <= n; col++ {
			if col > 1 {
				b.WriteByte(' ')
			}
			if col == q {
				b.WriteByte('Q')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
