package pipeline

import (
	"context"
	"time"

	"github.com/spren9er/cactuz-sub000/pkg/errors"
	"github.com/spren9er/cactuz-sub000/pkg/graph"
	"github.com/spren9er/cactuz-sub000/pkg/observability"
	"github.com/spren9er/cactuz-sub000/pkg/tree"
)

// BuildTree turns a flat input document into a rooted hierarchy. When
// opts.RootID is set, that node becomes the root and the layout covers its
// subtree (or, in a forest document, selects which tree to lay out).
//
// Node ids are validated before building; a document with an unsafe id is
// rejected as a whole rather than silently dropping records.
func BuildTree(ctx context.Context, doc graph.Document, opts Options) (*tree.Tree, error) {
	start := time.Now()
	observability.Pipeline().OnBuildStart(ctx, len(doc.Nodes))

	for _, n := range doc.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			observability.Pipeline().OnBuildComplete(ctx, 0, time.Since(start), err)
			return nil, err
		}
	}

	var t *tree.Tree
	if opts.RootID != "" {
		t = tree.BuildWithRoot(doc.Nodes, opts.RootID)
	} else {
		t = tree.Build(doc.Nodes)
	}

	observability.Pipeline().OnBuildComplete(ctx, t.Len(), time.Since(start), nil)
	return t, nil
}
