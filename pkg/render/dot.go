// Package render produces visualizations of hierarchies and their computed
// attributes.
//
// [ToDOT] converts a hierarchy to Graphviz DOT format with per-node attribute
// labels; [RenderSVG] and [RenderPNG] rasterize the DOT source using
// Graphviz. Leaves are placed on a shared rank so dendrograms read bottom-up.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/canopyhq/canopy/pkg/hierarchy"
)

// Options configures DOT generation.
type Options struct {
	// Attribute is the display name for the values in Values (e.g. "area").
	// Empty means nodes are labeled with their ids only.
	Attribute string

	// Values holds one value per node, aligned with the tree's node ids.
	// Ignored when Attribute is empty.
	Values []float64
}

// ToDOT converts a hierarchy to Graphviz DOT format.
//
// Edges point from each node to its parent, so the drawing grows upward from
// the leaf rank to the root, the usual orientation for dendrograms. When an
// attribute is supplied each node's label carries its value.
func ToDOT(t *hierarchy.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for n := range t.LeavesToRoot() {
		attrs := fmtAttrs(t, n, fmtLabel(n, opts))
		fmt.Fprintf(&buf, "  %d [%s];\n", n, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for n := range t.LeavesToRoot() {
		if n != t.Root() {
			fmt.Fprintf(&buf, "  %d -> %d;\n", n, t.Parent(n))
		}
	}

	// Pin all leaves to one rank so the tree reads as a dendrogram.
	buf.WriteString("\n  { rank=same;")
	for l := 0; l < t.NumLeaves(); l++ {
		fmt.Fprintf(&buf, " %d;", l)
	}
	buf.WriteString(" }\n")

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n int, opts Options) string {
	if opts.Attribute == "" || n >= len(opts.Values) {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d\n%s: %g", n, opts.Attribute, opts.Values[n])
}

func fmtAttrs(t *hierarchy.Tree, n int, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if t.IsLeaf(n) {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
