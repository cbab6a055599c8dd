package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spren9er/cactuz-sub000/pkg/graph"
	"github.com/spren9er/cactuz-sub000/pkg/tree"
)

// newInspectCmd creates the inspect command for examining input documents.
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show document statistics and root candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0])
		},
	}
}

func runInspect(ctx context.Context, input string) error {
	doc, err := graph.ReadDocumentFile(input)
	if err != nil {
		return err
	}

	t := tree.Build(doc.Nodes)
	roots := tree.Roots(doc.Nodes)

	fmt.Println(StyleTitle.Render(input))
	printKeyValue("records", fmt.Sprintf("%d", len(doc.Nodes)))
	printKeyValue("edges", fmt.Sprintf("%d", len(doc.Edges)))
	printKeyValue("reachable", fmt.Sprintf("%d", t.Len()))
	printKeyValue("weight", fmt.Sprintf("%g", t.Weight(0)))
	printKeyValue("depth", fmt.Sprintf("%d", maxDepth(t)))

	if dropped := len(doc.Nodes) - t.Len(); dropped > 0 {
		printWarning("%d record(s) dropped (duplicates, orphans, or extra roots)", dropped)
	}

	switch len(roots) {
	case 0:
		printWarning("No root candidates (every record names a parent)")
	case 1:
		printKeyValue("root", roots[0])
	default:
		printKeyValue("roots", strings.Join(roots, ", "))
		printNextStep("Render a specific tree", "cactuz render --root <id> "+input)
	}

	return nil
}

// maxDepth returns the deepest node's depth in the built hierarchy.
func maxDepth(t *tree.Tree) int {
	deepest := 0
	for i := range t.Len() {
		if d := t.Depth(i); d > deepest {
			deepest = d
		}
	}
	return deepest
}
