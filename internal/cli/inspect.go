package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canopyhq/canopy/pkg/attributes"
	"github.com/canopyhq/canopy/pkg/graph"
)

// newInspectCmd creates the inspect command.
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <hierarchy.json>",
		Short: "Print structural statistics for a hierarchy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := graph.ReadFile(args[0])
			if err != nil {
				return err
			}
			tree, err := doc.Tree()
			if err != nil {
				return err
			}

			maxDepth := 0
			for _, d := range attributes.Depth(tree) {
				if d > maxDepth {
					maxDepth = d
				}
			}

			if doc.Name != "" {
				printKeyValue("name", doc.Name)
			}
			printKeyValue("vertices", fmt.Sprintf("%d", tree.NumVertices()))
			printKeyValue("leaves", fmt.Sprintf("%d", tree.NumLeaves()))
			printKeyValue("internal", fmt.Sprintf("%d", tree.NumVertices()-tree.NumLeaves()))
			printKeyValue("root", fmt.Sprintf("%d", tree.Root()))
			printKeyValue("depth", fmt.Sprintf("%d", maxDepth))
			printKeyValue("altitudes", yesNo(doc.Altitudes != nil))
			printKeyValue("leaf areas", yesNo(doc.LeafAreas != nil))

			if len(doc.Attributes) > 0 {
				names := make([]string, 0, len(doc.Attributes))
				for name := range doc.Attributes {
					names = append(names, name)
				}
				sort.Strings(names)
				printKeyValue("attributes", strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
