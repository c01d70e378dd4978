// Package pkg provides the core libraries for Canopy hierarchy analysis.
//
// # Overview
//
// Canopy computes per-node attributes over partition hierarchies, the rooted
// trees produced by hierarchical clustering and image segmentation. The pkg
// directory is organized into five main areas:
//
//  1. [hierarchy] - The tree structure and leaves-to-root accumulators
//  2. [attributes] - Attribute algorithms (area, volume, depth, height, extinction)
//  3. [graph] - The JSON document format for hierarchies and results
//  4. [pipeline] - Orchestration (load → compute → render) with caching
//  5. [cache], [store], [render], [api] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through Canopy:
//
//	Hierarchy document (JSON)
//	         |
//	    [graph] package (decode + validate)
//	         |
//	    [hierarchy] package (tree structure, accumulators)
//	         |
//	    [attributes] package (per-node attribute arrays)
//	         |
//	    [render] package (DOT/SVG/PNG) or enriched JSON output
//
// # Quick Start
//
// Compute attributes over a hierarchy:
//
//	import (
//	    "github.com/canopyhq/canopy/pkg/attributes"
//	    "github.com/canopyhq/canopy/pkg/hierarchy"
//	)
//
//	tree, err := hierarchy.New(3, []int{3, 3, 4, 4, 4})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	area, err := attributes.Area[int](tree, nil)
//	// area == [1, 1, 1, 2, 3]
//
// Or run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, nil)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{})
package pkg
