package hierarchy

import (
	"iter"

	"github.com/canopyhq/canopy/pkg/errors"
)

// Tree is an immutable rooted hierarchy with topologically ordered node ids.
//
// Leaves occupy ids [0, NumLeaves), internal nodes follow, and the root is
// NumVertices-1. Every non-root node has a parent with a strictly larger id;
// the root is its own parent. The zero value is not usable - use New.
//
// Tree is safe for concurrent use: it is never mutated after construction.
type Tree struct {
	parents   []int
	children  [][]int
	numLeaves int
}

// New builds a Tree from a parent-pointer array and validates the
// topological-numbering invariant.
//
// parents[i] is the parent id of node i; the root must satisfy
// parents[root] == root with root == len(parents)-1. Leaves are the first
// numLeaves ids and can never appear as a parent, and every internal node
// must have at least one child.
//
// Returns an INVALID_HIERARCHY error describing the first violation found.
func New(numLeaves int, parents []int) (*Tree, error) {
	n := len(parents)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInvalidHierarchy, "parents array cannot be empty")
	}
	if numLeaves < 1 || numLeaves > n {
		return nil, errors.New(errors.ErrCodeInvalidHierarchy,
			"num_leaves %d out of range [1, %d]", numLeaves, n)
	}

	root := n - 1
	if parents[root] != root {
		return nil, errors.New(errors.ErrCodeInvalidHierarchy,
			"root %d must be its own parent, got parent %d", root, parents[root])
	}

	children := make([][]int, n)
	for i := 0; i < root; i++ {
		p := parents[i]
		if p < 0 || p >= n {
			return nil, errors.New(errors.ErrCodeInvalidHierarchy,
				"node %d has parent %d outside [0, %d)", i, p, n)
		}
		if p <= i {
			return nil, errors.New(errors.ErrCodeInvalidHierarchy,
				"node %d has parent %d: parent ids must be strictly larger than child ids", i, p)
		}
		if p < numLeaves {
			return nil, errors.New(errors.ErrCodeInvalidHierarchy,
				"node %d has leaf %d as parent", i, p)
		}
		children[p] = append(children[p], i)
	}

	for i := numLeaves; i < n; i++ {
		if len(children[i]) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidHierarchy,
				"internal node %d has no children", i)
		}
	}

	return &Tree{
		parents:   parents,
		children:  children,
		numLeaves: numLeaves,
	}, nil
}

// NumVertices returns the total node count (leaves plus internal nodes).
func (t *Tree) NumVertices() int { return len(t.parents) }

// NumLeaves returns the leaf count. Leaves occupy ids [0, NumLeaves).
func (t *Tree) NumLeaves() int { return t.numLeaves }

// Root returns the root node id, always NumVertices-1.
func (t *Tree) Root() int { return len(t.parents) - 1 }

// Parent returns the parent id of node i. The root is its own parent.
func (t *Tree) Parent(i int) int { return t.parents[i] }

// Parents returns the parent-pointer array.
// The returned slice is the tree's backing storage - treat it as read-only.
func (t *Tree) Parents() []int { return t.parents }

// Children returns the child ids of node i in ascending order.
// Empty for leaves. The returned slice is a read-only view.
func (t *Tree) Children(i int) []int { return t.children[i] }

// NumChildren returns the number of direct children of node i.
func (t *Tree) NumChildren(i int) int { return len(t.children[i]) }

// IsLeaf reports whether node i is a leaf.
func (t *Tree) IsLeaf(i int) bool { return i < t.numLeaves }

// TraversalOptions controls which nodes a root-to-leaves traversal yields.
// The zero value excludes both the root and the leaves, which is the common
// shape for propagation passes that seed the root directly.
type TraversalOptions struct {
	IncludeRoot   bool
	IncludeLeaves bool
}

// LeavesToRoot returns the ascending node-id sequence 0..root.
//
// Because ids are topologically ordered, every node is yielded after all of
// its descendants - the traversal shape required by upward accumulation.
func (t *Tree) LeavesToRoot() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range t.parents {
			if !yield(i) {
				return
			}
		}
	}
}

// InternalToRoot returns the ascending id sequence of internal nodes only,
// NumLeaves..root. Useful for accumulations that seed leaves separately.
func (t *Tree) InternalToRoot() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := t.numLeaves; i < len(t.parents); i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// RootToLeaves returns the descending node-id sequence, filtered by opts.
//
// Every node is yielded after its ancestors - the traversal shape required
// by downward propagation. With the zero options only internal non-root
// nodes are yielded.
func (t *Tree) RootToLeaves(opts TraversalOptions) iter.Seq[int] {
	return func(yield func(int) bool) {
		hi := len(t.parents) - 1
		if !opts.IncludeRoot {
			hi--
		}
		lo := t.numLeaves
		if opts.IncludeLeaves {
			lo = 0
		}
		for i := hi; i >= lo; i-- {
			if !yield(i) {
				return
			}
		}
	}
}
