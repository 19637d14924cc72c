package diff

import (
	"fmt"
	"math"
)

// maxDiagonals is the largest capacity whose buffer length does not overflow.
const maxDiagonals = (math.MaxInt - 1) / 2

// diagonals maps a signed diagonal index k in [-capacity, capacity] to the furthest reaching
// s-coordinate on that diagonal. Indices that were never written read as 0.
//
// A single buffer of 2*capacity+1 ints backs the store; see diagonalOffset for the layout.
type diagonals struct {
	v []int
}

func newDiagonals(capacity int) (*diagonals, error) {
	if capacity < 0 || capacity > maxDiagonals {
		return nil, fmt.Errorf("%w: %d diagonals", ErrTooLarge, capacity)
	}
	return &diagonals{v: make([]int, 2*capacity+1)}, nil
}

func (ds *diagonals) get(k int) int    { return ds.v[diagonalOffset(k)] }
func (ds *diagonals) set(k int, s int) { ds.v[diagonalOffset(k)] = s }

// diagonalOffset interleaves negative and positive diagonals into a dense non-negative range:
//
//	k:      0  -1   1  -2   2  -3 ...
//	offset: 0   1   2   3   4   5 ...
//
// It is a bijection from [-d, d] onto [0, 2d] for every d >= 0.
func diagonalOffset(k int) int {
	if k < 0 {
		return -2*k - 1
	}
	return 2 * k
}
