// Package diff computes minimal edit scripts between two slices of an arbitrary type with an
// arbitrary equality operator.
//
// The result is a [Difference]: the removals (descending by index into the original slice) and
// insertions (ascending by index into the final slice) that transform one slice into the other.
// Applying all removals first and all insertions afterwards, each in the order returned, never
// invalidates an index that is yet to be processed.
//
// Moves are not detected; a relocated element shows up as a removal and an insertion.
package diff

// Implementation note: This is an implementation of Myers' greedy shortest edit script search. The
// following links give a good explanation of the algorithm and working on this code will likely
// require re-reading how it works:
//
// https://blog.jcoglan.com/2017/02/12/the-myers-diff-algorithm-part-1/
// https://blog.jcoglan.com/2017/02/15/the-myers-diff-algorithm-part-2/
// https://blog.jcoglan.com/2017/02/17/the-myers-diff-algorithm-part-3/
//
// Coordinates: x indexes from (removals move right), y indexes to (insertions move down) and the
// diagonal k is x - y.

import (
	"errors"
	"fmt"
)

const debug bool = false

// ErrTooLarge is returned when the inputs are too large to diff within the configured limits.
var ErrTooLarge = errors.New("diff: inputs too large")

// DefaultTraceLimit is the default maximum number of trace entries kept for the backtrace. The
// trace grows quadratically with the edit distance; the default admits edit distances of roughly
// 8000.
const DefaultTraceLimit = 1 << 25

// Option configures a diff computation.
type Option func(*config)

type config struct {
	traceLimit int
}

// TraceLimit limits the number of trace entries a single computation may allocate. A computation
// that needs more fails with [ErrTooLarge]. A limit <= 0 removes the limit.
func TraceLimit(n int) Option {
	return func(c *config) {
		c.traceLimit = n
	}
}

func newConfig(opts []Option) config {
	c := config{traceLimit: DefaultTraceLimit}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&c)
	}
	return c
}

// Compute returns the difference that transforms from into to, using == for equality.
func Compute[T comparable](from, to []T, opts ...Option) (Difference[T], error) {
	return ComputeFunc(from, to, func(a, b T) bool { return a == b }, opts...)
}

// ComputeFunc returns the difference that transforms from into to, using eq for equality.
//
// eq must be an equivalence relation over the elements of both slices for the duration of the
// call. This is not checked; a predicate that is not reflexive, symmetric and transitive yields an
// unspecified (but still well-formed) difference.
//
// The only error is [ErrTooLarge].
func ComputeFunc[T any](from, to []T, eq func(a, b T) bool, opts ...Option) (Difference[T], error) {
	cfg := newConfig(opts)

	if len(from)+len(to) < 0 {
		return Difference[T]{}, fmt.Errorf("%w: %d + %d elements overflow", ErrTooLarge, len(from), len(to))
	}

	// Matches never produce changes, so a common prefix and suffix can be skipped. The prefix
	// length is the offset that translates window positions back to positions in from and to.
	offset := longestCommonPrefix(from, to, eq)
	x, y := from[offset:], to[offset:]
	n := longestCommonSuffix(x, y, eq)
	x, y = x[:len(x)-n], y[:len(y)-n]

	var changes []Change[T]
	switch {
	case len(x) == 0 && len(y) == 0:
		// nothing left to do
	case len(x) == 0:
		changes = make([]Change[T], 0, len(y))
		for i := range y {
			changes = append(changes, Change[T]{Insert, y[i], offset + i})
		}
	case len(y) == 0:
		changes = make([]Change[T], 0, len(x))
		for i := range x {
			changes = append(changes, Change[T]{Remove, x[i], offset + i})
		}
	default:
		var err error
		changes, err = shortestEditScript(x, y, offset, eq, cfg)
		if err != nil {
			return Difference[T]{}, err
		}
	}

	return NewDifference(changes), nil
}

func longestCommonPrefix[T any](x, y []T, eq func(a, b T) bool) int {
	n := min(len(x), len(y))
	for i := range n {
		if !eq(x[i], y[i]) {
			return i
		}
	}
	return n
}

func longestCommonSuffix[T any](x, y []T, eq func(a, b T) bool) int {
	n := min(len(x), len(y))
	for i := range n {
		if !eq(x[len(x)-i-1], y[len(y)-i-1]) {
			return i
		}
	}
	return n
}

// shortestEditScript runs the forward search over x and y and backtracks through the recorded
// trace. The returned changes are in reverse order; NewDifference sorts them.
func shortestEditScript[T any](x, y []T, offset int, eq func(a, b T) bool, cfg config) ([]Change[T], error) {
	tr, depth, err := search(x, y, eq, cfg)
	if err != nil {
		return nil, err
	}

	changes := make([]Change[T], 0, depth)
	s, t := len(x), len(y)
	for d := depth; d > 0; d-- {
		k := s - t
		if debug {
			if max(k, -k)%2 != d%2 {
				panic("invariant violation")
			}
		}

		// Replay the decision the forward search made when it reached diagonal k at depth d.
		var prevK int
		if k == -d || (k != d && tr.get(d-1, k-1) < tr.get(d-1, k+1)) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevS := tr.get(d-1, prevK)
		prevT := prevS - prevK

		if prevK == k+1 {
			// Step down: y[prevT] is inserted.
			changes = append(changes, Change[T]{Insert, y[prevT], offset + prevT})
		} else {
			// Step right: x[prevS] is removed.
			changes = append(changes, Change[T]{Remove, x[prevS], offset + prevS})
		}

		s, t = prevS, prevT
	}

	if debug {
		// Everything left must be a snake from (0, 0).
		if s != t {
			panic("invariant violation")
		}
	}
	return changes, nil
}

// search finds the length of the shortest edit script for x and y. It returns the trace of the
// furthest reaching points at every depth together with the edit distance.
func search[T any](x, y []T, eq func(a, b T) bool, cfg config) (*trace, int, error) {
	dmax := len(x) + len(y)

	// Depths beyond what the trace can hold fail anyway, so they don't need diagonals either.
	capacity := dmax + 1
	if cfg.traceLimit > 0 {
		capacity = min(capacity, maxTraceDepth(cfg.traceLimit)+1)
	}
	v, err := newDiagonals(capacity)
	if err != nil {
		return nil, 0, err
	}
	tr := &trace{limit: cfg.traceLimit, maxDepth: -1}

	for d := 0; d <= dmax; d++ {
		if err := tr.grow(d); err != nil {
			return nil, 0, err
		}
		for k := -d; k <= d; k += 2 {
			var s int
			if k == -d || (k != d && v.get(k-1) < v.get(k+1)) {
				s = v.get(k + 1)
			} else {
				s = v.get(k-1) + 1
			}
			t := s - k

			for s < len(x) && t < len(y) && eq(x[s], y[t]) {
				s++
				t++
			}

			v.set(k, s)
			tr.set(d, k, s)

			if s >= len(x) && t >= len(y) {
				return tr, d, nil
			}
		}
	}
	panic("never reached")
}
