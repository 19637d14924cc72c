package diff

import (
	"errors"
	"testing"
)

func TestDiagonalOffset(t *testing.T) {
	want := []struct{ k, offset int }{
		{0, 0}, {-1, 1}, {1, 2}, {-2, 3}, {2, 4}, {-3, 5}, {3, 6}, {-10, 19}, {10, 20},
	}
	for _, w := range want {
		if got := diagonalOffset(w.k); got != w.offset {
			t.Errorf("diagonalOffset(%d) = %d, want %d", w.k, got, w.offset)
		}
	}
}

func TestDiagonalOffsetIsBijection(t *testing.T) {
	for d := range 64 {
		seen := make([]bool, 2*d+1)
		for k := -d; k <= d; k++ {
			o := diagonalOffset(k)
			if o < 0 || o > 2*d {
				t.Fatalf("d=%d: diagonalOffset(%d) = %d, outside [0, %d]", d, k, o, 2*d)
			}
			if seen[o] {
				t.Fatalf("d=%d: diagonalOffset(%d) = %d is used twice", d, k, o)
			}
			seen[o] = true
		}
	}
}

func TestDiagonals(t *testing.T) {
	const capacity = 5
	ds, err := newDiagonals(capacity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for k := -capacity; k <= capacity; k++ {
		if got := ds.get(k); got != 0 {
			t.Errorf("get(%d) = %d before any set, want 0", k, got)
		}
	}
	for k := -capacity; k <= capacity; k++ {
		ds.set(k, 100+k)
	}
	for k := -capacity; k <= capacity; k++ {
		if got, want := ds.get(k), 100+k; got != want {
			t.Errorf("get(%d) = %d, want %d", k, got, want)
		}
	}
}

func TestNewDiagonalsTooLarge(t *testing.T) {
	for _, capacity := range []int{-1, maxDiagonals + 1} {
		if _, err := newDiagonals(capacity); !errors.Is(err, ErrTooLarge) {
			t.Errorf("newDiagonals(%d) error = %v, want %v", capacity, err, ErrTooLarge)
		}
	}
}

func TestTrace(t *testing.T) {
	tr := &trace{maxDepth: -1}
	for d := range 10 {
		if err := tr.grow(d); err != nil {
			t.Fatalf("grow(%d): unexpected error: %v", d, err)
		}
		for k := -d; k <= d; k += 2 {
			tr.set(d, k, d*100+k)
		}
	}
	for d := range 10 {
		for k := -d; k <= d; k += 2 {
			if got, want := tr.get(d, k), d*100+k; got != want {
				t.Errorf("get(%d, %d) = %d, want %d", d, k, got, want)
			}
		}
	}
	if got, want := len(tr.v), 11*10/2; got != want {
		t.Errorf("trace holds %d entries, want %d", got, want)
	}
}

func TestMaxTraceDepth(t *testing.T) {
	tests := []struct{ limit, depth int }{
		{1, 0},
		{2, 0},
		{3, 1},
		{5, 1},
		{6, 2},
		{153, 16},
		{154, 16},
	}
	for _, tt := range tests {
		if got := maxTraceDepth(tt.limit); got != tt.depth {
			t.Errorf("maxTraceDepth(%d) = %d, want %d", tt.limit, got, tt.depth)
		}
	}
}
