package store

import (
	"context"
	"slices"
	"sync"

	"github.com/canopyhq/canopy/pkg/errors"
	"github.com/canopyhq/canopy/pkg/graph"
)

// MemoryStore is an in-memory document store for development and testing.
// It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]graph.Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]graph.Document)}
}

// Save stores a document, replacing any document with the same name.
func (s *MemoryStore) Save(ctx context.Context, doc graph.Document) error {
	if err := checkName(doc.Name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.Name] = doc
	return nil
}

// Get retrieves a document by name.
func (s *MemoryStore) Get(ctx context.Context, name string) (graph.Document, error) {
	if err := checkName(name); err != nil {
		return graph.Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[name]
	if !ok {
		return graph.Document{}, errors.New(errors.ErrCodeNotFound, "no document named %q", name)
	}
	return doc, nil
}

// List returns the names of all stored documents in sorted order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a document. Deleting a missing name is not an error.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, name)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
