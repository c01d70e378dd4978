package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/canopyhq/canopy/pkg/errors"
	"github.com/canopyhq/canopy/pkg/hierarchy"
)

// Document is the canonical serialization format for a partition hierarchy.
// Used for files, API requests and responses, cache entries, and storage.
//
// Parents and NumLeaves define the tree; Altitudes and LeafAreas are the
// optional inputs attribute algorithms consume; Attributes holds computed
// per-node arrays keyed by attribute name.
type Document struct {
	Name       string               `json:"name,omitempty" bson:"name,omitempty"`
	NumLeaves  int                  `json:"num_leaves" bson:"num_leaves"`
	Parents    []int                `json:"parents" bson:"parents"`
	Altitudes  []float64            `json:"altitudes,omitempty" bson:"altitudes,omitempty"`
	LeafAreas  []float64            `json:"leaf_areas,omitempty" bson:"leaf_areas,omitempty"`
	Attributes map[string][]float64 `json:"attributes,omitempty" bson:"attributes,omitempty"`
	Meta       map[string]any       `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Tree builds and validates the hierarchy the document describes.
// Optional arrays are shape-checked against the tree when present.
func (d *Document) Tree() (*hierarchy.Tree, error) {
	t, err := hierarchy.New(d.NumLeaves, d.Parents)
	if err != nil {
		return nil, err
	}
	if d.Altitudes != nil {
		if err := errors.CheckLength("altitudes", len(d.Altitudes), t.NumVertices()); err != nil {
			return nil, err
		}
	}
	if d.LeafAreas != nil {
		if err := errors.CheckLength("leaf_areas", len(d.LeafAreas), t.NumLeaves()); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// SetAttribute records a computed attribute array under the given name,
// replacing any previous value.
func (d *Document) SetAttribute(name string, values []float64) {
	if d.Attributes == nil {
		d.Attributes = make(map[string][]float64)
	}
	d.Attributes[name] = values
}

// FromTree creates a document describing an existing tree.
func FromTree(t *hierarchy.Tree, altitudes []float64) Document {
	return Document{
		NumLeaves: t.NumLeaves(),
		Parents:   t.Parents(),
		Altitudes: altitudes,
	}
}

// Read decodes a document from r.
func Read(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode hierarchy document")
	}
	return d, nil
}

// ReadFile reads a hierarchy document from a JSON file.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes the document as indented JSON to w.
func Write(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes the document to a JSON file at path.
// The file is created with 0644 permissions.
func WriteFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f)
}

// Marshal converts a document to JSON bytes.
func Marshal(d Document) ([]byte, error) {
	return json.Marshal(d)
}

// Unmarshal decodes a document from JSON bytes.
func Unmarshal(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode hierarchy document")
	}
	return d, nil
}
