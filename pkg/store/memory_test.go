package store

import (
	"context"
	"reflect"
	"slices"
	"testing"

	"github.com/canopyhq/canopy/pkg/errors"
	"github.com/canopyhq/canopy/pkg/graph"
)

func testDoc(name string) graph.Document {
	return graph.Document{
		Name:      name,
		NumLeaves: 3,
		Parents:   []int{3, 3, 4, 4, 4},
		Attributes: map[string][]float64{
			"area": {1, 1, 1, 2, 3},
		},
	}
}

func TestMemoryStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	doc := testDoc("dendrogram")
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Get(ctx, "dendrogram")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("Get() = %+v, want %+v", got, doc)
	}
}

func TestMemoryStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.Save(ctx, testDoc("tree"))

	updated := testDoc("tree")
	updated.SetAttribute("depth", []float64{2, 2, 1, 1, 0})
	if err := s.Save(ctx, updated); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Get(ctx, "tree")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, ok := got.Attributes["depth"]; !ok {
		t.Error("Save() did not replace existing document")
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get() error = %v, want NOT_FOUND", err)
	}
}

func TestMemoryStore_EmptyName(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Save(context.Background(), graph.Document{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save() error = %v, want INVALID_INPUT", err)
	}
	if _, err := s.Get(context.Background(), ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Get() error = %v, want INVALID_INPUT", err)
	}
}

func TestMemoryStore_ListSorted(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_ = s.Save(ctx, testDoc(name))
	}

	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if want := []string{"alpha", "mid", "zeta"}; !slices.Equal(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.Save(ctx, testDoc("tree"))
	if err := s.Delete(ctx, "tree"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "tree"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get() after Delete() error = %v, want NOT_FOUND", err)
	}

	// Deleting a missing name is not an error.
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}
