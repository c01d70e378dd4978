package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/canopyhq/canopy/pkg/attributes"
	"github.com/canopyhq/canopy/pkg/cache"
	"github.com/canopyhq/canopy/pkg/errors"
	"github.com/canopyhq/canopy/pkg/graph"
	"github.com/canopyhq/canopy/pkg/hierarchy"
	"github.com/canopyhq/canopy/pkg/observability"
	"github.com/canopyhq/canopy/pkg/render"
)

// Runner encapsulates pipeline execution with content-addressed caching.
// It holds the stable pieces (cache, keyer) so callers only pass per-run
// options to Execute.
type Runner struct {
	cache cache.Cache
	keyer cache.Keyer
}

// NewRunner creates a runner with the given cache and keyer.
// If cache is nil, a NullCache is used (no caching).
// If keyer is nil, a DefaultKeyer is used.
func NewRunner(c cache.Cache, keyer cache.Keyer) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Runner{cache: c, keyer: keyer}
}

// Execute runs the full load, compute, render pipeline over a document.
//
// The returned result carries the input document enriched with every
// computed attribute. Attributes a requested computation depends on (area
// for volume, the base attribute for extinction) are computed and included
// even when not requested explicitly.
func (r *Runner) Execute(ctx context.Context, doc graph.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
		CacheInfo: make(map[string]bool),
	}
	logger.Debug("pipeline started", "run_id", result.RunID)

	// Stage 1: build and validate the hierarchy.
	loadStart := time.Now()
	observability.Compute().OnLoadStart(ctx, doc.Name)
	tree, err := doc.Tree()
	observability.Compute().OnLoadComplete(ctx, doc.Name, treeSize(tree), time.Since(loadStart), err)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NumVertices = tree.NumVertices()
	result.Stats.NumLeaves = tree.NumLeaves()
	result.TreeHash = treeHash(doc)
	result.Document = doc
	logger.Debug("hierarchy loaded",
		"vertices", tree.NumVertices(),
		"leaves", tree.NumLeaves(),
		"hash", result.TreeHash[:12])

	// Stage 2: compute the requested attributes, dependencies first.
	computeStart := time.Now()
	for _, name := range computeOrder(opts) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		values, hit, err := r.computeAttribute(ctx, tree, &result.Document, name, opts, result.TreeHash)
		if err != nil {
			return nil, err
		}
		result.Document.SetAttribute(name, values)
		result.CacheInfo[name] = hit
		logger.Debug("attribute ready", "attribute", name, "cached", hit)
	}
	result.Stats.ComputeTime = time.Since(computeStart)

	// Stage 3: render the requested artifacts.
	renderStart := time.Now()
	observability.Compute().OnRenderStart(ctx, opts.Formats)
	err = r.renderArtifacts(ctx, tree, result, opts)
	observability.Compute().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Debug("pipeline complete",
		"run_id", result.RunID,
		"compute", result.Stats.ComputeTime,
		"render", result.Stats.RenderTime)
	return result, nil
}

// computeOrder expands the requested attributes with their dependencies and
// returns them in canonical order. Volume needs area, and extinction needs
// whichever base attribute the options name.
func computeOrder(opts Options) []string {
	need := make(map[string]bool, len(opts.Attributes))
	for _, a := range opts.Attributes {
		need[a] = true
	}
	if need[AttrVolume] {
		need[AttrArea] = true
	}
	if need[AttrExtinction] {
		need[opts.ExtinctionBase] = true
		if opts.ExtinctionBase == AttrVolume {
			need[AttrArea] = true
		}
	}

	order := make([]string, 0, len(need))
	for _, a := range AllAttributes {
		if need[a] {
			order = append(order, a)
		}
	}
	return order
}

// computeAttribute returns the attribute array for name, from cache when
// possible. The document must already hold every dependency of name in its
// Attributes map; computeOrder guarantees that ordering.
func (r *Runner) computeAttribute(ctx context.Context, tree *hierarchy.Tree, doc *graph.Document, name string, opts Options, treeHash string) (values []float64, hit bool, err error) {
	keyOpts := cache.AttributeKeyOpts{Attribute: name}
	switch name {
	case AttrHeight:
		keyOpts.Increasing = opts.Increasing()
	case AttrExtinction:
		keyOpts.Base = opts.ExtinctionBase
		keyOpts.Increasing = opts.Increasing()
	}
	key := r.keyer.AttributeKey(treeHash, keyOpts)

	if !opts.Refresh {
		data, ok, err := r.cache.Get(ctx, key)
		if err != nil {
			return nil, false, err
		}
		if ok {
			var cached []float64
			if err := json.Unmarshal(data, &cached); err == nil && len(cached) == tree.NumVertices() {
				observability.Cache().OnCacheHit(ctx, "attribute")
				return cached, true, nil
			}
			// Corrupt entry, fall through and recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "attribute")
	}

	start := time.Now()
	observability.Compute().OnComputeStart(ctx, name, tree.NumVertices())
	values, err = evaluate(tree, doc, name, opts)
	observability.Compute().OnComputeComplete(ctx, name, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(values); err == nil {
		if err := r.cache.Set(ctx, key, data, opts.TTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "attribute", len(data))
		}
	}
	return values, false, nil
}

// evaluate dispatches to the attribute algorithms.
func evaluate(tree *hierarchy.Tree, doc *graph.Document, name string, opts Options) ([]float64, error) {
	switch name {
	case AttrArea:
		return attributes.Area(tree, doc.LeafAreas)

	case AttrVolume:
		if doc.Altitudes == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "volume requires node altitudes")
		}
		return attributes.Volume(tree, doc.Altitudes, doc.Attributes[AttrArea])

	case AttrDepth:
		depths := attributes.Depth(tree)
		values := make([]float64, len(depths))
		for i, d := range depths {
			values[i] = float64(d)
		}
		return values, nil

	case AttrHeight:
		if doc.Altitudes == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "height requires node altitudes")
		}
		return attributes.Height(tree, doc.Altitudes, opts.Increasing())

	case AttrExtinction:
		return attributes.Extinction(tree, doc.Attributes[opts.ExtinctionBase])

	default:
		return nil, errors.New(errors.ErrCodeInvalidAttribute, "unknown attribute %q", name)
	}
}

// renderArtifacts fills result.Artifacts for every requested format.
// SVG and PNG reuse the DOT source, so Graphviz layout runs at most twice.
func (r *Runner) renderArtifacts(ctx context.Context, tree *hierarchy.Tree, result *Result, opts Options) error {
	var dot string
	needDOT := false
	for _, f := range opts.Formats {
		if f != FormatJSON {
			needDOT = true
		}
	}
	if needDOT {
		dot = render.ToDOT(tree, render.Options{
			Attribute: opts.RenderAttr,
			Values:    result.Document.Attributes[opts.RenderAttr],
		})
	}

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatJSON:
			data, err = graph.Marshal(result.Document)
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = render.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = render.RenderPNG(ctx, dot)
		default:
			err = errors.New(errors.ErrCodeInvalidFormat, "invalid format %q", format)
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		result.Artifacts[format] = data
	}
	return nil
}

// treeHash content-addresses the computation inputs. Attributes, name, and
// metadata are excluded so renames do not invalidate cache entries.
func treeHash(doc graph.Document) string {
	inputs := graph.Document{
		NumLeaves: doc.NumLeaves,
		Parents:   doc.Parents,
		Altitudes: doc.Altitudes,
		LeafAreas: doc.LeafAreas,
	}
	data, _ := graph.Marshal(inputs)
	return cache.Hash(data)
}

func treeSize(t *hierarchy.Tree) int {
	if t == nil {
		return 0
	}
	return t.NumVertices()
}
