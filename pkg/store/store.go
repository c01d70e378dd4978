// Package store provides persistent storage for hierarchy documents and
// their computed attributes.
//
// Two backends are provided: [MemoryStore] for development and testing, and
// [MongoStore] for durable multi-instance deployments. Documents are keyed
// by their Name field; saving a document with an existing name replaces it.
package store

import (
	"context"

	"github.com/canopyhq/canopy/pkg/errors"
	"github.com/canopyhq/canopy/pkg/graph"
)

// Store is the interface for document storage backends.
type Store interface {
	// Save stores a document, replacing any document with the same name.
	// Documents without a name are rejected with INVALID_INPUT.
	Save(ctx context.Context, doc graph.Document) error

	// Get retrieves a document by name.
	// Returns a NOT_FOUND error if no document has that name.
	Get(ctx context.Context, name string) (graph.Document, error)

	// List returns the names of all stored documents.
	List(ctx context.Context) ([]string, error)

	// Delete removes a document. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// Close releases any resources held by the backend.
	Close(ctx context.Context) error
}

// checkName validates a document name before any storage operation.
func checkName(name string) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "document name cannot be empty")
	}
	return nil
}
