// Package nodelink renders the raw hierarchy as a Graphviz node-link
// diagram. It exists for debugging: the radial layout is the product, but a
// plain top-down tree with the cross-links drawn dashed is often the
// fastest way to check whether an input document says what you think it
// says.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/spren9er/cactuz-sub000/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes explicit weights in node labels.
	// When false, only the display name is shown.
	Detailed bool
}

// ToDOT converts an input document to Graphviz DOT format. Hierarchy edges
// are drawn solid, cross-links dashed, so the two relation kinds stay
// distinguishable in the output.
func ToDOT(doc graph.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range doc.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, fmtLabel(n, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, n := range doc.Nodes {
		if n.Parent != "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.Parent, n.ID)
		}
	}
	for _, e := range doc.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed, constraint=false, color=grey];\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.NodeRecord, detailed bool) string {
	label := n.DisplayName()
	if detailed && n.Weight > 0 {
		label = fmt.Sprintf("%s\nweight: %g", label, n.Weight)
	}
	return label
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
