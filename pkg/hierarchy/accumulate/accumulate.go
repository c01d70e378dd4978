// Package accumulate provides the generic reductions that attribute
// algorithms are built on: a leaves-to-root fold (Sequential) and a per-node
// reduction over direct children (Parallel).
//
// Reductions are expressed as [Reducer] strategy values - an associative,
// commutative combine function plus its identity element - so the two
// traversal disciplines are written once and shared by every attribute.
package accumulate

import (
	"github.com/canopyhq/canopy/pkg/errors"
	"github.com/canopyhq/canopy/pkg/hierarchy"
)

// Number constrains the value types attribute arrays can hold.
type Number interface {
	~int | ~int32 | ~int64 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// Reducer is a reduction strategy: an identity element and an associative,
// commutative combine function. Pass it by value; it holds no state.
type Reducer[T Number] struct {
	Identity T
	Combine  func(a, b T) T
}

// Sum returns the additive reduction with identity 0.
func Sum[T Number]() Reducer[T] {
	return Reducer[T]{Combine: func(a, b T) T { return a + b }}
}

// Min returns the minimum reduction. The identity is left at the zero value:
// Sequential never reads it (every internal node has at least one child) and
// Parallel only assigns it to leaves, which have no children to reduce.
func Min[T Number]() Reducer[T] {
	return Reducer[T]{Combine: func(a, b T) T {
		if b < a {
			return b
		}
		return a
	}}
}

// Max returns the maximum reduction.
func Max[T Number]() Reducer[T] {
	return Reducer[T]{Combine: func(a, b T) T {
		if b > a {
			return b
		}
		return a
	}}
}

// Sequential folds values upward through the tree: each leaf keeps its input
// value and each internal node receives the reduction of its children's
// accumulated values, visited in a single leaves-to-root pass.
//
// values must have either NumLeaves entries (leaf values only) or
// NumVertices entries (only the leaf prefix is read); anything else fails
// with an INVALID_SHAPE error. Children combine in ascending id order, which
// keeps floating-point results reproducible.
func Sequential[T Number](t *hierarchy.Tree, values []T, r Reducer[T]) ([]T, error) {
	if len(values) != t.NumLeaves() && len(values) != t.NumVertices() {
		return nil, errors.New(errors.ErrCodeInvalidShape,
			"values has %d entries, want %d (leaves) or %d (vertices)",
			len(values), t.NumLeaves(), t.NumVertices())
	}

	out := make([]T, t.NumVertices())
	copy(out, values[:t.NumLeaves()])

	for n := range t.InternalToRoot() {
		children := t.Children(n)
		acc := out[children[0]]
		for _, c := range children[1:] {
			acc = r.Combine(acc, out[c])
		}
		out[n] = acc
	}
	return out, nil
}

// Parallel computes, for every node, the reduction of its direct children's
// input values. No recursion takes place: each node sees only its immediate
// children, and leaves receive the reducer's identity element.
//
// values must have NumVertices entries; anything else fails with an
// INVALID_SHAPE error.
func Parallel[T Number](t *hierarchy.Tree, values []T, r Reducer[T]) ([]T, error) {
	if err := errors.CheckLength("values", len(values), t.NumVertices()); err != nil {
		return nil, err
	}

	out := make([]T, t.NumVertices())
	for n := range t.LeavesToRoot() {
		children := t.Children(n)
		if len(children) == 0 {
			out[n] = r.Identity
			continue
		}
		acc := values[children[0]]
		for _, c := range children[1:] {
			acc = r.Combine(acc, values[c])
		}
		out[n] = acc
	}
	return out, nil
}
