package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/canopyhq/canopy/pkg/errors"
	"github.com/canopyhq/canopy/pkg/graph"
)

// MongoStore is a MongoDB-backed document store for durable deployments.
// Documents live in a single collection, keyed by the name field with a
// unique index expected to be in place.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "canopy"
	Collection string // defaults to "hierarchies"
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "canopy"
	}
	if cfg.Collection == "" {
		cfg.Collection = "hierarchies"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb at %s: %w", cfg.URI, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb at %s: %w", cfg.URI, err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save stores a document, replacing any document with the same name.
func (s *MongoStore) Save(ctx context.Context, doc graph.Document) error {
	if err := checkName(doc.Name); err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"name": doc.Name}, doc, opts)
	if err != nil {
		return fmt.Errorf("save document %q: %w", doc.Name, err)
	}
	return nil
}

// Get retrieves a document by name.
func (s *MongoStore) Get(ctx context.Context, name string) (graph.Document, error) {
	if err := checkName(name); err != nil {
		return graph.Document{}, err
	}
	var doc graph.Document
	err := s.collection.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return graph.Document{}, errors.New(errors.ErrCodeNotFound, "no document named %q", name)
	}
	if err != nil {
		return graph.Document{}, fmt.Errorf("get document %q: %w", name, err)
	}
	return doc, nil
}

// List returns the names of all stored documents in sorted order.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1}).
		SetSort(bson.M{"name": 1})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var row struct {
			Name string `bson:"name"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode document name: %w", err)
		}
		names = append(names, row.Name)
	}
	return names, cursor.Err()
}

// Delete removes a document. Deleting a missing name is not an error.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("delete document %q: %w", name, err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
