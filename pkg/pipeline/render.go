package pipeline

import (
	"context"
	"time"

	"github.com/spren9er/cactuz-sub000/pkg/graph"
	"github.com/spren9er/cactuz-sub000/pkg/layout"
	"github.com/spren9er/cactuz-sub000/pkg/observability"
	"github.com/spren9er/cactuz-sub000/pkg/render/nodelink"
	"github.com/spren9er/cactuz-sub000/pkg/render/sink"
	"github.com/spren9er/cactuz-sub000/pkg/render/styles"
	"github.com/spren9er/cactuz-sub000/pkg/route"
)

// RenderFromLayout renders a computed layout in each requested format. The
// DOT format ignores the layout and renders the input document's structure
// instead, which is why the document travels alongside the layout here.
func RenderFromLayout(ctx context.Context, l graph.Layout, doc graph.Document, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	style, err := styles.Resolve(opts.Style)
	if err != nil {
		return nil, err
	}

	if opts.EdgePoint == route.EdgePointPerimeter {
		l = projectPaths(l, style.StrokeWidth)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderOne(ctx, l, doc, style, format, opts)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, err
		}
		artifacts[format] = data
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, nil
}

func renderOne(ctx context.Context, l graph.Layout, doc graph.Document, style styles.Style, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []sink.SVGOption{sink.WithStyle(style), sink.WithInteraction()}
		if opts.ShowLinks {
			svgOpts = append(svgOpts, sink.WithLinks())
		}
		return sink.RenderSVG(l, svgOpts...), nil

	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithPNGStyle(style)}
		if opts.ShowLinks {
			pngOpts = append(pngOpts, sink.WithPNGLinks())
		}
		return sink.RenderPNG(l, pngOpts...)

	case FormatJSON:
		return sink.RenderJSON(l, sink.WithJSONStyle(style.Name))

	case FormatDOT:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(doc, nodelink.Options{}))

	default:
		// Unreachable after ValidateForRender; kept for direct callers.
		return nil, ValidateFormat(format)
	}
}

// projectPaths moves every path's endpoints from circle centers onto the
// circle perimeters. Runs at render time because the offset depends on the
// style's stroke width.
func projectPaths(l graph.Layout, strokeWidth float64) graph.Layout {
	byID := make(map[string]layout.RenderedNode, len(l.Nodes))
	for _, n := range l.Nodes {
		byID[n.ID] = layout.RenderedNode{ID: n.ID, X: n.X, Y: n.Y, Radius: n.Radius}
	}

	projected := make([]graph.EdgePath, len(l.Paths))
	for i, p := range l.Paths {
		src, sok := byID[p.Source]
		dst, dok := byID[p.Target]
		if !sok || !dok || len(p.Points) < 2 {
			projected[i] = p
			continue
		}
		pts := make([]layout.Point, len(p.Points))
		for j, pt := range p.Points {
			pts[j] = layout.Point{X: pt.X, Y: pt.Y}
		}
		out := route.ProjectPerimeter(pts, src, dst, strokeWidth)
		projected[i] = graph.EdgePath{Source: p.Source, Target: p.Target, Points: exportPoints(out)}
	}

	l.Paths = projected
	return l
}
