package pipeline

import (
	"context"
	"time"

	"github.com/spren9er/cactuz-sub000/pkg/graph"
	"github.com/spren9er/cactuz-sub000/pkg/label"
	"github.com/spren9er/cactuz-sub000/pkg/layout"
	"github.com/spren9er/cactuz-sub000/pkg/observability"
	"github.com/spren9er/cactuz-sub000/pkg/route"
	"github.com/spren9er/cactuz-sub000/pkg/tree"
)

// ComputeLayout runs the layout stage: fit the circle layout to the frame,
// place labels, and route the document's cross-links through the hierarchy.
// The returned Layout is fully serializable and sufficient to render any
// output format.
func ComputeLayout(ctx context.Context, t *tree.Tree, doc graph.Document, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, t.Len())

	nodes := layout.Fit(t, opts.Width, opts.Height, opts.layoutOptions())

	l := graph.Layout{
		FrameWidth:  opts.Width,
		FrameHeight: opts.Height,
		Seed:        opts.Seed,
		Style:       opts.Style,
		Nodes:       exportNodes(nodes),
	}

	if !opts.NoLabels {
		placeStart := time.Now()
		observability.Pipeline().OnPlaceStart(ctx, len(nodes))
		res := label.Place(nodes, opts.labelOptions())
		l.Labels, l.Links = exportLabels(res)
		observability.Pipeline().OnPlaceComplete(ctx, len(res.Labels), time.Since(placeStart), nil)
	}

	l.Paths = routeEdges(t, nodes, doc.Edges, opts)

	observability.Pipeline().OnLayoutComplete(ctx, t.Len(), time.Since(start), nil)
	return l, nil
}

func exportNodes(nodes []layout.RenderedNode) []graph.PlacedNode {
	out := make([]graph.PlacedNode, len(nodes))
	for i, n := range nodes {
		out[i] = graph.PlacedNode{
			ID:     n.ID,
			Name:   n.Name,
			X:      n.X,
			Y:      n.Y,
			Radius: n.Radius,
			Depth:  n.Depth,
			Angle:  n.Angle,
			Leaf:   n.Leaf,
		}
	}
	return out
}

// exportLabels converts the label engine's result to the serialization
// format. The engine emits one leader line per outside label, in label
// order; the Link index re-establishes that pairing explicitly.
func exportLabels(res label.Result) ([]graph.PlacedLabel, []graph.LeaderLine) {
	labels := make([]graph.PlacedLabel, len(res.Labels))
	next := 0
	for i, l := range res.Labels {
		pl := graph.PlacedLabel{
			Key:    l.Key,
			Text:   l.Text,
			X:      l.X,
			Y:      l.Y,
			Width:  l.Width,
			Height: l.Height,
			Inside: l.Inside,
			Link:   -1,
		}
		if !l.Inside {
			pl.Link = next
			next++
		}
		labels[i] = pl
	}

	links := make([]graph.LeaderLine, len(res.Links))
	for i, ln := range res.Links {
		links[i] = graph.LeaderLine{X1: ln.X1, Y1: ln.Y1, X2: ln.X2, Y2: ln.Y2}
	}
	return labels, links
}

// routeEdges builds the bundled path for every cross-link. Edges whose
// endpoints cannot be resolved at all are dropped; routing is best effort,
// never an error.
func routeEdges(t *tree.Tree, nodes []layout.RenderedNode, edges []graph.EdgeRecord, opts Options) []graph.EdgePath {
	if len(edges) == 0 {
		return nil
	}

	router := route.NewRouter(t, nodes)
	paths := make([]graph.EdgePath, 0, len(edges))
	for _, e := range edges {
		p := router.BuildPath(e.Source, e.Target)
		if len(p) < 2 {
			continue
		}
		blended := route.Blend(p, opts.BundlingStrength)
		paths = append(paths, graph.EdgePath{
			Source: e.Source,
			Target: e.Target,
			Points: exportPoints(blended),
		})
	}
	return paths
}

func exportPoints(pts []layout.Point) []graph.Point {
	out := make([]graph.Point, len(pts))
	for i, p := range pts {
		out[i] = graph.Point{X: p.X, Y: p.Y}
	}
	return out
}
