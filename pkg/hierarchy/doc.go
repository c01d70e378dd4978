// Package hierarchy provides the rooted partition-hierarchy tree that all
// attribute computations operate on.
//
// A hierarchy is a rooted tree over a fixed set of leaves and internal nodes,
// typically derived from an image or a dendrogram. Node ids are topologically
// ordered: leaves occupy the range [0, NumLeaves), every child has a strictly
// smaller id than its parent, and the root is the highest id and its own
// parent. This numbering is the structural invariant the whole toolkit relies
// on - it lets leaves-to-root and root-to-leaves traversals run as plain
// ascending/descending index scans, with no recursion and no explicit stack.
//
// # Construction
//
// Trees are built from a parent-pointer array and validated once:
//
//	t, err := hierarchy.New(3, []int{3, 3, 4, 4, 4})
//	if err != nil {
//	    return err
//	}
//
// After construction a Tree is immutable and safe for concurrent reads.
//
// # Traversal
//
// The iterators return node-id sequences compatible with range-over-func:
//
//	for n := range t.LeavesToRoot() {
//	    // every child of n was already visited
//	}
//
//	for n := range t.RootToLeaves(hierarchy.TraversalOptions{IncludeLeaves: true}) {
//	    // the parent of n was already visited
//	}
//
// The accumulate subpackage builds the generic leaves-to-root and per-node
// reductions on top of these traversals.
package hierarchy
