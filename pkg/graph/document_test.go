package graph

import (
	"bytes"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/canopyhq/canopy/pkg/errors"
)

func testDoc() Document {
	return Document{
		Name:      "dendrogram",
		NumLeaves: 3,
		Parents:   []int{3, 3, 4, 4, 4},
		Altitudes: []float64{0, 0, 0, 1, 2},
		Attributes: map[string][]float64{
			"area": {1, 1, 1, 2, 3},
		},
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	doc := testDoc()

	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip = %+v, want %+v", got, doc)
	}
}

func TestDocument_FileRoundTrip(t *testing.T) {
	doc := testDoc()
	path := filepath.Join(t.TempDir(), "tree.json")

	if err := WriteFile(doc, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("file round trip = %+v, want %+v", got, doc)
	}
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRead_InvalidJSON(t *testing.T) {
	_, err := Read(strings.NewReader("{not json"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Read() error = %v, want INVALID_FORMAT", err)
	}
}

func TestDocument_Tree(t *testing.T) {
	doc := testDoc()

	tree, err := doc.Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if tree.NumVertices() != 5 || tree.NumLeaves() != 3 {
		t.Errorf("Tree() = %d vertices, %d leaves", tree.NumVertices(), tree.NumLeaves())
	}
}

func TestDocument_Tree_BadShapes(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		code errors.Code
	}{
		{
			name: "invalid parents",
			doc:  Document{NumLeaves: 2, Parents: []int{0, 2, 2}},
			code: errors.ErrCodeInvalidHierarchy,
		},
		{
			name: "altitudes wrong length",
			doc:  Document{NumLeaves: 3, Parents: []int{3, 3, 4, 4, 4}, Altitudes: []float64{1, 2}},
			code: errors.ErrCodeInvalidShape,
		},
		{
			name: "leaf areas wrong length",
			doc:  Document{NumLeaves: 3, Parents: []int{3, 3, 4, 4, 4}, LeafAreas: []float64{1}},
			code: errors.ErrCodeInvalidShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.Tree()
			if !errors.Is(err, tt.code) {
				t.Errorf("Tree() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestSetAttribute(t *testing.T) {
	var doc Document
	doc.SetAttribute("depth", []float64{2, 2, 1, 1, 0})

	if got := doc.Attributes["depth"]; !slices.Equal(got, []float64{2, 2, 1, 1, 0}) {
		t.Errorf("Attributes[depth] = %v", got)
	}
}
