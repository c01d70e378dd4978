package hierarchy

import (
	"slices"
	"testing"

	"github.com/canopyhq/canopy/pkg/errors"
)

// testTree is the 5-node reference hierarchy used throughout the test suite:
//
//	      4 (root)
//	     / \
//	    3   2
//	   / \
//	  0   1
func testTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := New(3, []int{3, 3, 4, 4, 4})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tree
}

func TestNew_Valid(t *testing.T) {
	tree := testTree(t)

	if tree.NumVertices() != 5 {
		t.Errorf("NumVertices() = %d, want 5", tree.NumVertices())
	}
	if tree.NumLeaves() != 3 {
		t.Errorf("NumLeaves() = %d, want 3", tree.NumLeaves())
	}
	if tree.Root() != 4 {
		t.Errorf("Root() = %d, want 4", tree.Root())
	}
	if tree.Parent(0) != 3 || tree.Parent(2) != 4 || tree.Parent(4) != 4 {
		t.Errorf("Parent() mismatch: got %d, %d, %d", tree.Parent(0), tree.Parent(2), tree.Parent(4))
	}
	if got := tree.Children(3); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("Children(3) = %v, want [0 1]", got)
	}
	if got := tree.Children(4); !slices.Equal(got, []int{2, 3}) {
		t.Errorf("Children(4) = %v, want [2 3]", got)
	}
	if got := tree.Children(1); len(got) != 0 {
		t.Errorf("Children(1) = %v, want empty", got)
	}
	if !tree.IsLeaf(2) || tree.IsLeaf(3) {
		t.Error("IsLeaf() mismatch for nodes 2 and 3")
	}
}

func TestNew_SingleLeafRoot(t *testing.T) {
	// A one-node tree: the single leaf is also the root.
	tree, err := New(1, []int{0})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tree.Root() != 0 || tree.NumLeaves() != 1 {
		t.Errorf("Root() = %d, NumLeaves() = %d", tree.Root(), tree.NumLeaves())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		numLeaves int
		parents   []int
	}{
		{"empty parents", 1, nil},
		{"zero leaves", 0, []int{2, 2, 2}},
		{"too many leaves", 4, []int{2, 2, 2}},
		{"root not self-parent", 2, []int{2, 2, 1}},
		{"parent out of range", 2, []int{5, 2, 2}},
		{"parent not larger than child", 2, []int{0, 2, 2}},
		{"leaf as parent", 3, []int{1, 3, 3, 3}},
		{"childless internal node", 2, []int{3, 3, 3, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.numLeaves, tt.parents)
			if err == nil {
				t.Fatal("New() error = nil, want INVALID_HIERARCHY")
			}
			if !errors.Is(err, errors.ErrCodeInvalidHierarchy) {
				t.Errorf("New() code = %v, want INVALID_HIERARCHY", errors.GetCode(err))
			}
		})
	}
}

func TestLeavesToRoot(t *testing.T) {
	tree := testTree(t)

	var got []int
	for n := range tree.LeavesToRoot() {
		got = append(got, n)
	}
	if want := []int{0, 1, 2, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("LeavesToRoot() = %v, want %v", got, want)
	}

	// Every node must appear after all of its children.
	seen := make(map[int]bool)
	for n := range tree.LeavesToRoot() {
		for _, c := range tree.Children(n) {
			if !seen[c] {
				t.Errorf("node %d yielded before child %d", n, c)
			}
		}
		seen[n] = true
	}
}

func TestInternalToRoot(t *testing.T) {
	tree := testTree(t)

	var got []int
	for n := range tree.InternalToRoot() {
		got = append(got, n)
	}
	if want := []int{3, 4}; !slices.Equal(got, want) {
		t.Errorf("InternalToRoot() = %v, want %v", got, want)
	}
}

func TestRootToLeaves(t *testing.T) {
	tree := testTree(t)

	tests := []struct {
		name string
		opts TraversalOptions
		want []int
	}{
		{"exclude both", TraversalOptions{}, []int{3}},
		{"include root", TraversalOptions{IncludeRoot: true}, []int{4, 3}},
		{"include leaves", TraversalOptions{IncludeLeaves: true}, []int{3, 2, 1, 0}},
		{"include both", TraversalOptions{IncludeRoot: true, IncludeLeaves: true}, []int{4, 3, 2, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for n := range tree.RootToLeaves(tt.opts) {
				got = append(got, n)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("RootToLeaves(%+v) = %v, want %v", tt.opts, got, tt.want)
			}
		})
	}
}

func TestRootToLeaves_ParentFirst(t *testing.T) {
	tree := testTree(t)

	seen := map[int]bool{tree.Root(): true}
	for n := range tree.RootToLeaves(TraversalOptions{IncludeLeaves: true}) {
		if !seen[tree.Parent(n)] {
			t.Errorf("node %d yielded before parent %d", n, tree.Parent(n))
		}
		seen[n] = true
	}
}

func TestIterators_EarlyBreak(t *testing.T) {
	tree := testTree(t)

	count := 0
	for range tree.LeavesToRoot() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("early break yielded %d nodes, want 2", count)
	}
}
