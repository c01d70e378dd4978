// Package attributes computes per-node statistical and structural attributes
// over a partition hierarchy: area, volume, depth, height, and extinction.
//
// Each algorithm is a single linear pass (or two) over the node-id range,
// exploiting the topological numbering of [hierarchy.Tree]: an ascending scan
// visits every node after its descendants, a descending scan after its
// ancestors. No algorithm mutates the tree or an input array; each returns a
// freshly allocated result owned by the caller.
//
// Shape preconditions (array lengths) are checked up front and fail with
// INVALID_SHAPE errors before any computation. Semantic preconditions - the
// monotone altitude assumed by [Height], the non-decreasing base attribute
// assumed by [Extinction] - are documented but not validated: violating them
// yields a well-defined but meaningless result, not an error.
package attributes

import (
	"math"

	"github.com/canopyhq/canopy/pkg/errors"
	"github.com/canopyhq/canopy/pkg/hierarchy"
	"github.com/canopyhq/canopy/pkg/hierarchy/accumulate"
)

// Area computes the cumulative leaf weight under each node: the area of a
// node is the sum of the areas of the leaves in its subtree.
//
// leafArea holds one weight per leaf and must have exactly NumLeaves entries.
// A nil leafArea assigns every leaf weight 1, so area reduces to the leaf
// count of each subtree.
func Area[T accumulate.Number](t *hierarchy.Tree, leafArea []T) ([]T, error) {
	if leafArea == nil {
		leafArea = make([]T, t.NumLeaves())
		for i := range leafArea {
			leafArea[i] = 1
		}
	} else if err := errors.CheckLength("leaf_area", len(leafArea), t.NumLeaves()); err != nil {
		return nil, err
	}
	return accumulate.Sequential(t, leafArea, accumulate.Sum[T]())
}

// Volume computes the cumulative altitude-weighted area under each node:
//
//	volume(n) = |altitude(n) - altitude(parent(n))| * area(n) + sum of children's volumes
//
// The root's own term is zero since the root is its own parent. Both inputs
// must have exactly NumVertices entries.
//
// The recurrence mixes a per-node multiplicative term with additive child
// aggregation, so it cannot be phrased as a plain reduction: the pass reads
// children's already-committed results while filling the output, which the
// ascending id order guarantees is safe.
func Volume(t *hierarchy.Tree, nodeAltitude, nodeArea []float64) ([]float64, error) {
	if err := errors.CheckLength("node_altitude", len(nodeAltitude), t.NumVertices()); err != nil {
		return nil, err
	}
	if err := errors.CheckLength("node_area", len(nodeArea), t.NumVertices()); err != nil {
		return nil, err
	}

	volume := make([]float64, t.NumVertices())
	for n := range t.LeavesToRoot() {
		volume[n] = math.Abs(nodeAltitude[n]-nodeAltitude[t.Parent(n)]) * nodeArea[n]
		for _, c := range t.Children(n) {
			volume[n] += volume[c]
		}
	}
	return volume, nil
}

// Depth computes the number of ancestors of each node: 0 for the root,
// depth(parent)+1 everywhere else, filled in a single descending scan.
func Depth(t *hierarchy.Tree) []int {
	depth := make([]int, t.NumVertices())
	depth[t.Root()] = 0
	for n := range t.RootToLeaves(hierarchy.TraversalOptions{IncludeLeaves: true}) {
		depth[n] = depth[t.Parent(n)] + 1
	}
	return depth
}

// Height computes, for each node, the altitude difference between the node
// and its farthest leaf descendant.
//
// nodeAltitude must have exactly NumVertices entries and is assumed to vary
// monotonically from leaves to root: non-decreasing when increasing is true,
// non-increasing otherwise. Under that precondition every height is
// non-negative. The precondition is not checked.
func Height[T accumulate.Number](t *hierarchy.Tree, nodeAltitude []T, increasing bool) ([]T, error) {
	if err := errors.CheckLength("node_altitude", len(nodeAltitude), t.NumVertices()); err != nil {
		return nil, err
	}

	if increasing {
		extrema, err := accumulate.Sequential(t, nodeAltitude, accumulate.Min[T]())
		if err != nil {
			return nil, err
		}
		for i := range extrema {
			extrema[i] = nodeAltitude[i] - extrema[i]
		}
		return extrema, nil
	}

	extrema, err := accumulate.Sequential(t, nodeAltitude, accumulate.Max[T]())
	if err != nil {
		return nil, err
	}
	for i := range extrema {
		extrema[i] = extrema[i] - nodeAltitude[i]
	}
	return extrema, nil
}

// Extinction computes the extinction value of each node for a base
// attribute: extinction(n) equals extinction(parent(n)) if n has the largest
// base value among its siblings (ties included), and base(n) otherwise. The
// root's extinction is its own base value.
//
// base must have exactly NumVertices entries and is assumed non-decreasing
// from leaves to root; the precondition is not checked.
//
// The sibling-maximum test is an exact value comparison. For floating-point
// base attributes this makes tie-breaking sensitive to how upstream values
// were produced: siblings that are numerically equal but not bit-identical
// receive different extinction assignments.
func Extinction[T accumulate.Number](t *hierarchy.Tree, base []T) ([]T, error) {
	if err := errors.CheckLength("node_base_attribute", len(base), t.NumVertices()); err != nil {
		return nil, err
	}

	maxChildren, err := accumulate.Parallel(t, base, accumulate.Max[T]())
	if err != nil {
		return nil, err
	}

	extinction := make([]T, t.NumVertices())
	extinction[t.Root()] = base[t.Root()]
	for n := range t.RootToLeaves(hierarchy.TraversalOptions{IncludeLeaves: true}) {
		if base[n] == maxChildren[t.Parent(n)] {
			extinction[n] = extinction[t.Parent(n)]
		} else {
			extinction[n] = base[n]
		}
	}
	return extinction, nil
}
