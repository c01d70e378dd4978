package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/canopyhq/canopy/pkg/graph"
	"github.com/canopyhq/canopy/pkg/pipeline"
)

// newRenderCmd creates the render command.
func newRenderCmd(configPath *string) *cobra.Command {
	var (
		format string
		attr   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "render <hierarchy.json>",
		Short: "Render a hierarchy as DOT, SVG, or PNG",
		Long: `Render a partition hierarchy as a dendrogram.

Nodes are labeled with the chosen attribute, which is computed on the fly
when the document does not already carry it. Leaves share a rank at the
bottom and edges point upward toward the root.`,
		Example: `  canopy render tree.json
  canopy render tree.json --format png -o tree.png
  canopy render tree.json --attr extinction`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			doc, err := graph.ReadFile(args[0])
			if err != nil {
				return err
			}

			c, err := cfg.newCache(ctx)
			if err != nil {
				return err
			}
			defer c.Close()
			runner := pipeline.NewRunner(c, nil)

			opts := pipeline.Options{
				Attributes: []string{attr},
				Formats:    []string{format},
				RenderAttr: attr,
				TTL:        time.Duration(cfg.Cache.TTL),
				Logger:     logger,
			}

			spin := newSpinnerWithContext(ctx, "Rendering...")
			spin.Start()
			result, err := runner.Execute(ctx, doc, opts)
			spin.Stop()
			if err != nil {
				return err
			}

			if output == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				output = base + "." + format
			}
			if err := os.WriteFile(output, result.Artifacts[format], 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			printSuccess("Rendered %s", StyleHighlight.Render(attr))
			printHierarchyStats(result.Stats.NumVertices, result.Stats.NumLeaves)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatSVG, "output format: dot, svg, or png")
	cmd.Flags().StringVar(&attr, "attr", pipeline.AttrArea, "attribute shown in node labels")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default input name with format extension)")

	return cmd
}
