package diff

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Kind describes the kind of a change.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind
type Kind int

const (
	Insert Kind = iota // An element of the final slice that is missing in the original one
	Remove             // An element of the original slice that is missing in the final one
)

// Change describes a single insertion or removal.
//
//   - For Remove, Index is the position of Elem in the original slice. Indices always refer to the
//     original slice, earlier removals don't renumber them.
//   - For Insert, Index is the position of Elem in the final slice.
type Change[T any] struct {
	Kind  Kind
	Elem  T
	Index int
}

func (c Change[T]) String() string {
	op := '+'
	if c.Kind == Remove {
		op = '-'
	}
	return fmt.Sprintf("%c%d:%v", op, c.Index, c.Elem)
}

// Difference is an edit script transforming one slice into another.
//
// A Difference is immutable; the accessors return copies.
type Difference[T any] struct {
	insertions []Change[T] // ascending by index
	removals   []Change[T] // descending by index
}

// NewDifference creates a difference from an unordered list of changes. Removals are sorted by
// descending index and insertions by ascending index.
//
// NewDifference panics if a change has a Kind other than Insert or Remove.
func NewDifference[T any](changes []Change[T]) Difference[T] {
	var d Difference[T]
	for _, c := range changes {
		switch c.Kind {
		case Insert:
			d.insertions = append(d.insertions, c)
		case Remove:
			d.removals = append(d.removals, c)
		default:
			panic(fmt.Sprintf("unknown change kind: %v", c.Kind))
		}
	}
	slices.SortStableFunc(d.insertions, func(a, b Change[T]) int { return cmp.Compare(a.Index, b.Index) })
	slices.SortStableFunc(d.removals, func(a, b Change[T]) int { return cmp.Compare(b.Index, a.Index) })
	return d
}

// Insertions returns the insertions in ascending index order.
func (d Difference[T]) Insertions() []Change[T] { return slices.Clone(d.insertions) }

// Removals returns the removals in descending index order.
func (d Difference[T]) Removals() []Change[T] { return slices.Clone(d.removals) }

// HasChanges reports whether the difference contains at least one insertion or removal.
func (d Difference[T]) HasChanges() bool { return len(d.insertions) > 0 || len(d.removals) > 0 }

// Len returns the total number of changes, which for a computed difference is the edit distance.
func (d Difference[T]) Len() int { return len(d.insertions) + len(d.removals) }

// All enumerates all changes in the order they need to be applied: removals first, then
// insertions.
func (d Difference[T]) All() iter.Seq2[int, Change[T]] {
	return func(yield func(int, Change[T]) bool) {
		i := 0
		for _, c := range d.removals {
			if !yield(i, c) {
				return
			}
			i++
		}
		for _, c := range d.insertions {
			if !yield(i, c) {
				return
			}
			i++
		}
	}
}

// Inverse returns the difference that undoes d: every insertion becomes a removal and vice versa.
func (d Difference[T]) Inverse() Difference[T] {
	inv := Difference[T]{
		insertions: make([]Change[T], 0, len(d.removals)),
		removals:   make([]Change[T], 0, len(d.insertions)),
	}
	for _, c := range slices.Backward(d.removals) {
		inv.insertions = append(inv.insertions, Change[T]{Insert, c.Elem, c.Index})
	}
	for _, c := range slices.Backward(d.insertions) {
		inv.removals = append(inv.removals, Change[T]{Remove, c.Elem, c.Index})
	}
	return inv
}

func (d Difference[T]) String() string {
	if !d.HasChanges() {
		return "no changes"
	}
	var sb strings.Builder
	for i, c := range d.All() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}

// Equal reports whether a and b contain the same changes in the same order.
func Equal[T comparable](a, b Difference[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal but compares elements using eq.
func EqualFunc[T any](a, b Difference[T], eq func(x, y T) bool) bool {
	same := func(x, y Change[T]) bool {
		return x.Kind == y.Kind && x.Index == y.Index && eq(x.Elem, y.Elem)
	}
	return slices.EqualFunc(a.insertions, b.insertions, same) &&
		slices.EqualFunc(a.removals, b.removals, same)
}

// ErrOutOfRange is returned by Apply if a change doesn't fit the slice it is applied to.
var ErrOutOfRange = errors.New("diff: change index out of range")

// Apply applies d to a copy of s and returns the result. Removals are applied first, highest index
// first, followed by the insertions, lowest index first.
//
// Apply doesn't check that removed elements are equal to the ones found in s.
func Apply[T any](d Difference[T], s []T) ([]T, error) {
	out := slices.Clone(s)
	for _, c := range d.All() {
		switch c.Kind {
		case Remove:
			if c.Index < 0 || c.Index >= len(out) {
				return nil, fmt.Errorf("%w: removing %d from %d elements", ErrOutOfRange, c.Index, len(out))
			}
			out = slices.Delete(out, c.Index, c.Index+1)
		case Insert:
			if c.Index < 0 || c.Index > len(out) {
				return nil, fmt.Errorf("%w: inserting at %d into %d elements", ErrOutOfRange, c.Index, len(out))
			}
			out = slices.Insert(out, c.Index, c.Elem)
		}
	}
	return out, nil
}
