// Package graph defines the canonical serialization format for hierarchies
// and their computed attributes.
//
// A [Document] carries the parent-pointer array that defines the tree, the
// optional per-node altitudes and per-leaf areas that attribute algorithms
// consume, and any attribute arrays already computed for it. The format is
// used for files, API payloads, cache entries, and store documents, and is
// designed for round-trip fidelity: import → compute → export → re-import
// produces identical results.
package graph
