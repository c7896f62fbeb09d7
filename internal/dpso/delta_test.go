package dpso

import (
	"errors"
	"testing"
)

func buildDelta(ts ...Transposition) *Delta {
	d := NewDelta()
	for _, t := range ts {
		d.Append(t)
	}
	return d
}

func TestDelta_AppendKeepsFirstPosition(t *testing.T) {
	d := buildDelta(
		Transposition{0, 1},
		Transposition{2, 3},
		Transposition{0, 1}, // duplicate
	)

	if d.Len() != 2 {
		t.Fatalf("Expected 2 transpositions, got %d", d.Len())
	}

	ops := d.Transpositions()
	if ops[0] != (Transposition{0, 1}) || ops[1] != (Transposition{2, 3}) {
		t.Errorf("Duplicate append should keep first position, got %v", ops)
	}
}

func TestDelta_ZeroValueUsable(t *testing.T) {
	var d Delta

	d.Append(Transposition{0, 1})
	d.Append(Transposition{0, 1}) // duplicate still deduped
	d.Append(Transposition{1, 2})

	if d.Len() != 2 {
		t.Errorf("Expected 2 transpositions on a zero-value delta, got %d", d.Len())
	}
}

func TestDelta_TransposionsReturnsCopy(t *testing.T) {
	d := buildDelta(Transposition{0, 1}, Transposition{1, 2})

	ops := d.Transpositions()
	ops[0] = Transposition{5, 6}

	if d.Transpositions()[0] != (Transposition{0, 1}) {
		t.Error("Mutating the returned slice should not affect the delta")
	}
}

func TestDelta_Truncate(t *testing.T) {
	d := buildDelta(
		Transposition{0, 1},
		Transposition{1, 2},
		Transposition{2, 3},
	)

	tests := []struct {
		k    int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 3},
		{5, 3},  // clamped to length
		{-1, 0}, // clamped to zero
	}

	for _, tt := range tests {
		got := d.Truncate(tt.k)
		if got.Len() != tt.want {
			t.Errorf("Truncate(%d): expected %d transpositions, got %d", tt.k, tt.want, got.Len())
		}
	}

	// Prefix content is preserved in order
	first2 := d.Truncate(2).Transpositions()
	if first2[0] != (Transposition{0, 1}) || first2[1] != (Transposition{1, 2}) {
		t.Errorf("Truncate(2) should keep the first two transpositions, got %v", first2)
	}

	// Original is untouched
	if d.Len() != 3 {
		t.Errorf("Truncate should not modify the receiver, len is now %d", d.Len())
	}
}

func TestDelta_Scale(t *testing.T) {
	d := buildDelta(
		Transposition{0, 1},
		Transposition{1, 2},
		Transposition{2, 3},
		Transposition{0, 3},
	)

	zero, err := d.Scale(0.0)
	if err != nil {
		t.Fatalf("Scale(0.0) failed: %v", err)
	}
	if zero.Len() != 0 {
		t.Errorf("Scale(0.0) should yield an empty delta, got %d", zero.Len())
	}

	all, err := d.Scale(1.0)
	if err != nil {
		t.Fatalf("Scale(1.0) failed: %v", err)
	}
	if all.Len() != 4 {
		t.Errorf("Scale(1.0) should keep all transpositions, got %d", all.Len())
	}

	half, err := d.Scale(0.5)
	if err != nil {
		t.Fatalf("Scale(0.5) failed: %v", err)
	}
	if half.Len() != 2 {
		t.Errorf("Scale(0.5) of 4 should keep 2 transpositions, got %d", half.Len())
	}
}

func TestDelta_ScaleRoundsHalfToEven(t *testing.T) {
	d := buildDelta(Transposition{0, 1}) // 0.5 * 1 = 0.5 rounds to 0

	got, err := d.Scale(0.5)
	if err != nil {
		t.Fatalf("Scale(0.5) failed: %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("0.5 of length 1 should round to 0 transpositions, got %d", got.Len())
	}

	d3 := buildDelta(
		Transposition{0, 1},
		Transposition{1, 2},
		Transposition{2, 3},
	) // 0.5 * 3 = 1.5 rounds to 2

	got3, err := d3.Scale(0.5)
	if err != nil {
		t.Fatalf("Scale(0.5) failed: %v", err)
	}
	if got3.Len() != 2 {
		t.Errorf("0.5 of length 3 should round to 2 transpositions, got %d", got3.Len())
	}
}

func TestDelta_ScaleOutOfRange(t *testing.T) {
	d := buildDelta(Transposition{0, 1}, Transposition{1, 2})

	for _, r := range []float64{-0.1, 1.1, 2.0, -3.0} {
		got, err := d.Scale(r)
		if err == nil {
			t.Errorf("Scale(%v) should fail", r)
		}
		if !errors.Is(err, ErrScaleRange) {
			t.Errorf("Scale(%v) should return ErrScaleRange, got %v", r, err)
		}
		if got != nil {
			t.Errorf("Scale(%v) should return a nil delta on error", r)
		}
	}

	// Failed scale leaves the receiver untouched
	if d.Len() != 2 {
		t.Errorf("Failed scale should not consume input, len is now %d", d.Len())
	}
}

func TestDelta_Concat(t *testing.T) {
	a := buildDelta(Transposition{0, 1}, Transposition{1, 2})
	b := buildDelta(Transposition{2, 3}, Transposition{0, 1}) // {0,1} repeats

	got := a.Concat(b)

	want := []Transposition{{0, 1}, {1, 2}, {2, 3}}
	ops := got.Transpositions()
	if len(ops) != len(want) {
		t.Fatalf("Expected %d transpositions, got %d", len(want), len(ops))
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("Position %d: expected %v, got %v", i, want[i], ops[i])
		}
	}

	// Inputs are untouched
	if a.Len() != 2 || b.Len() != 2 {
		t.Error("Concat should not modify its inputs")
	}
}
