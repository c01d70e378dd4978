package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/canopyhq/canopy/pkg/graph"
	"github.com/canopyhq/canopy/pkg/pipeline"
)

// newComputeCmd creates the compute command.
func newComputeCmd(configPath *string) *cobra.Command {
	var (
		attrs          []string
		decreasing     bool
		extinctionBase string
		refresh        bool
		output         string
		saveAs         string
		pick           bool
	)

	cmd := &cobra.Command{
		Use:   "compute <hierarchy.json>",
		Short: "Compute attributes over a partition hierarchy",
		Long: `Compute per-node attributes over a partition hierarchy.

The input is a JSON hierarchy document with a parent array in topological
order. Computed attributes are added to the document, which is written to
stdout or to --output. Results are cached by content hash, so recomputing
over an unchanged hierarchy is instant.`,
		Example: `  canopy compute tree.json
  canopy compute tree.json -a area -a depth -o enriched.json
  canopy compute tree.json -a extinction --extinction-base height
  canopy compute tree.json --pick`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			if pick {
				picked, err := pickAttributes(attrs)
				if err != nil {
					return err
				}
				if len(picked) == 0 {
					printInfo("No attributes selected")
					return nil
				}
				attrs = picked
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
				Attributes:     attrs,
				Decreasing:     decreasing,
				ExtinctionBase: extinctionBase,
				Refresh:        refresh,
				TTL:            time.Duration(cfg.Cache.TTL),
				Logger:         logger,
			}

			prog := newProgress(logger)
			spin := newSpinnerWithContext(ctx, "Computing attributes...")
			spin.Start()
			result, err := runner.Execute(ctx, doc, opts)
			spin.Stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Computed %d attributes", len(result.CacheInfo)))

			printSuccess("Hierarchy %s", StyleHighlight.Render(result.TreeHash[:12]))
			printHierarchyStats(result.Stats.NumVertices, result.Stats.NumLeaves)
			for _, name := range pipeline.AllAttributes {
				if hit, ok := result.CacheInfo[name]; ok {
					printAttribute(name, hit)
				}
			}

			if saveAs != "" {
				st, err := cfg.newStore(ctx)
				if err != nil {
					return err
				}
				defer st.Close(ctx)
				result.Document.Name = saveAs
				if err := st.Save(ctx, result.Document); err != nil {
					return err
				}
				printInfo("Saved as %s", StyleHighlight.Render(saveAs))
			}

			if output == "" || output == "-" {
				return graph.Write(result.Document, os.Stdout)
			}
			if err := graph.WriteFile(result.Document, output); err != nil {
				return err
			}
			printFile(output)
			printNextStep("Render it", fmt.Sprintf("canopy render %s", output))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&attrs, "attr", "a", nil, "attributes to compute (default all)")
	cmd.Flags().BoolVar(&decreasing, "decreasing", false, "altitudes decrease from leaves to root")
	cmd.Flags().StringVar(&extinctionBase, "extinction-base", "", "base attribute for extinction: area, volume, or height (default area)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&saveAs, "save", "", "persist the enriched document under this name")
	cmd.Flags().BoolVar(&pick, "pick", false, "pick attributes interactively")

	return cmd
}
