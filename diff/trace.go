package diff

import (
	"fmt"
	"math"
	"slices"
)

// trace stores the furthest reaching point of every diagonal at every depth of the forward search.
// By storing all of them, the backtrace can replay every decision without a second pass.
//
// At depth d only the d+1 diagonals k in {-d, -d+2, ..., d} are live, so depth d occupies d+1
// consecutive slots after the (d+1)*d/2 slots of all shallower depths.
type trace struct {
	v        []int
	maxDepth int
	limit    int // maximum len(v), <= 0 means unlimited
}

// grow makes room for depth d, failing with ErrTooLarge if that exceeds the limit.
func (tr *trace) grow(d int) error {
	if d <= tr.maxDepth {
		return nil
	}
	n := (d + 2) * (d + 1) / 2
	if n < 0 || (tr.limit > 0 && n > tr.limit) {
		return fmt.Errorf("%w: trace for edit distance %d exceeds %d entries", ErrTooLarge, d, tr.limit)
	}
	tr.v = slices.Grow(tr.v, n-len(tr.v))
	tr.v = tr.v[:n]
	tr.maxDepth = d
	return nil
}

func (tr *trace) get(d, k int) int    { return tr.v[tr.index(d, k)] }
func (tr *trace) set(d, k int, s int) { tr.v[tr.index(d, k)] = s }

func (tr *trace) index(d, k int) int {
	if debug {
		if d < 0 || d > tr.maxDepth {
			panic(fmt.Sprintf("d must be in [0, %v] but is %v", tr.maxDepth, d))
		}
		if k < -d || k > d {
			panic(fmt.Sprintf("k must be in [%v, %v] but is %v", -d, d, k))
		}
		if k&1 != d&1 {
			panic(fmt.Sprintf("d and k must have same parity: %v vs %v", d, k))
		}
	}
	return (d+1)*d/2 + (k+d)/2
}

// maxTraceDepth returns the deepest depth a trace limited to limit entries can hold.
func maxTraceDepth(limit int) int {
	d := int(math.Sqrt(2 * float64(limit)))
	for d > 0 && (d+2)*(d+1)/2 > limit {
		d--
	}
	return d
}
