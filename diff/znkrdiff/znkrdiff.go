// Package znkrdiff computes differences with znkr.io/diff instead of the diff package's own
// search.
//
// znkr.io/diff uses the linear space variant of Myers' algorithm together with heuristics that
// bound its running time on large inputs. For large inputs with many differences the result may
// therefore be longer than the minimal one, but it is always a valid edit script.
package znkrdiff

import (
	"flo.znkr.io/tabdiff/diff"
	zdiff "znkr.io/diff"
)

// Compute returns the difference that transforms from into to, using == for equality.
func Compute[T comparable](from, to []T) diff.Difference[T] {
	return ComputeFunc(from, to, func(a, b T) bool { return a == b })
}

// ComputeFunc returns the difference that transforms from into to, using eq for equality.
func ComputeFunc[T any](from, to []T, eq func(a, b T) bool) diff.Difference[T] {
	edits := zdiff.EditsFunc(from, to, eq)

	var changes []diff.Change[T]
	s, t := 0, 0
	for _, edit := range edits {
		switch edit.Op {
		case zdiff.Match:
			s++
			t++
		case zdiff.Delete:
			changes = append(changes, diff.Change[T]{Kind: diff.Remove, Elem: edit.X, Index: s})
			s++
		case zdiff.Insert:
			changes = append(changes, diff.Change[T]{Kind: diff.Insert, Elem: edit.Y, Index: t})
			t++
		}
	}
	return diff.NewDifference(changes)
}
