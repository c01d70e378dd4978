// Package pipeline provides the core attribute-computation pipeline for
// Canopy.
//
// This package implements the complete load → compute → render pipeline
// shared by the CLI and the HTTP API. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: decode and validate a hierarchy document
//  2. Compute: evaluate the requested attributes, with content-addressed caching
//  3. Render: generate output in various formats (JSON, DOT, SVG, PNG)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Attributes: []string{"area", "depth"},
//	    Formats:    []string{"json"},
//	}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	areas := result.Document.Attributes["area"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/canopyhq/canopy/pkg/errors"
	"github.com/canopyhq/canopy/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Attribute names accepted by the pipeline.
const (
	AttrArea       = "area"
	AttrVolume     = "volume"
	AttrDepth      = "depth"
	AttrHeight     = "height"
	AttrExtinction = "extinction"
)

// ValidAttributes is the set of computable attributes.
var ValidAttributes = map[string]bool{
	AttrArea:       true,
	AttrVolume:     true,
	AttrDepth:      true,
	AttrHeight:     true,
	AttrExtinction: true,
}

// AllAttributes lists every attribute in canonical order.
var AllAttributes = []string{AttrArea, AttrVolume, AttrDepth, AttrHeight, AttrExtinction}

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// DefaultTTL is the default cache TTL for computed attributes.
// Attribute arrays are content-addressed, so entries never go stale; the TTL
// only bounds disk and Redis usage.
const DefaultTTL = 7 * 24 * time.Hour

// DefaultExtinctionBase is the attribute extinction values are computed from
// when the caller does not pick one. Area is non-decreasing from leaves to
// root, which is exactly the semantic precondition extinction assumes.
const DefaultExtinctionBase = AttrArea

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the attribute pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Attributes to compute, in order. Empty means all of them.
	Attributes []string `json:"attributes,omitempty"`

	// Decreasing marks the altitudes as non-increasing from leaves to root.
	// The default (false) assumes increasing altitudes, the common case for
	// dendrograms.
	Decreasing bool `json:"decreasing,omitempty"`

	// ExtinctionBase names the attribute extinction is computed from:
	// "area", "volume", or "height". Defaults to area.
	ExtinctionBase string `json:"extinction_base,omitempty"`

	// Render options
	Formats    []string      `json:"formats,omitempty"`     // defaults to ["json"]
	RenderAttr string        `json:"render_attr,omitempty"` // attribute shown in DOT/SVG/PNG labels
	Refresh    bool          `json:"refresh,omitempty"`     // bypass the cache
	TTL        time.Duration `json:"-"`                     // cache TTL, defaults to DefaultTTL
	SaveAs     string        `json:"save_as,omitempty"`     // persist the result document under this name

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline execution in logs.
	RunID string

	// Document is the input document enriched with every computed attribute.
	Document graph.Document

	// TreeHash is the content hash of the hierarchy and its inputs.
	TreeHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo records, per attribute, whether the value came from cache.
	CacheInfo map[string]bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NumVertices int
	NumLeaves   int
	LoadTime    time.Duration
	ComputeTime time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateAttribute checks that an attribute name is computable.
func ValidateAttribute(name string) error {
	if !ValidAttributes[name] {
		return errors.New(errors.ErrCodeInvalidAttribute,
			"unknown attribute %q (must be one of: area, volume, depth, height, extinction)", name)
	}
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Attributes) == 0 {
		o.Attributes = append([]string(nil), AllAttributes...)
	}
	for _, a := range o.Attributes {
		if err := ValidateAttribute(a); err != nil {
			return err
		}
	}

	if o.ExtinctionBase == "" {
		o.ExtinctionBase = DefaultExtinctionBase
	}
	switch o.ExtinctionBase {
	case AttrArea, AttrVolume, AttrHeight:
	default:
		return errors.New(errors.ErrCodeInvalidAttribute,
			"invalid extinction base %q (must be one of: area, volume, height)", o.ExtinctionBase)
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}

	if o.RenderAttr == "" {
		o.RenderAttr = o.Attributes[0]
	}
	if err := ValidateAttribute(o.RenderAttr); err != nil {
		return err
	}

	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Increasing reports whether altitudes rise from leaves to root.
func (o *Options) Increasing() bool { return !o.Decreasing }
