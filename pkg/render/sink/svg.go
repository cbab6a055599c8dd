package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/spren9er/cactuz-sub000/pkg/graph"
	"github.com/spren9er/cactuz-sub000/pkg/render/styles"
)

const circleInteractionCSS = `
    .circle { transition: stroke-width 0.2s ease; }
    .circle.highlight { stroke-width: 3; }
    .link { transition: opacity 0.2s ease; }
    .link.suppressed { opacity: 0; }`

const circleInteractionJS = `
    const leaves = new Set(Array.from(document.querySelectorAll('.circle[data-leaf="true"]')).map(c => c.dataset.id));
    function hover(id) {
      document.querySelectorAll('.circle').forEach(c => c.classList.toggle('highlight', c.dataset.id === id));
      const suppress = id !== null && leaves.has(id);
      document.querySelectorAll('.link').forEach(p => {
        p.classList.toggle('suppressed', suppress && p.dataset.source !== id && p.dataset.target !== id);
      });
    }
    document.querySelectorAll('.circle').forEach(el => {
      el.addEventListener('mouseenter', () => hover(el.dataset.id));
      el.addEventListener('mouseleave', () => hover(null));
    });`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	showLinks   bool
	interactive bool
}

// WithStyle sets the visual style (default: simple).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithLinks draws the bundled cross-link paths.
func WithLinks() SVGOption { return func(r *svgRenderer) { r.showLinks = true } }

// WithInteraction embeds hover highlighting and link suppression scripts.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// RenderSVG renders the layout as an SVG document. Circles are emitted in
// the layout's order, which is sorted by depth so parents paint under their
// children; labels and leader lines paint last.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.FrameWidth, l.FrameHeight, l.FrameWidth, l.FrameHeight)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.style.Background)

	renderCircles(&buf, &r, l)
	if r.showLinks {
		renderLinks(&buf, &r, l)
	}
	renderLabels(&buf, &r, l)

	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", circleInteractionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", circleInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: mustSimple()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func mustSimple() styles.Style {
	s, _ := styles.Builtin(styles.StyleSimple)
	return s
}

func renderCircles(buf *bytes.Buffer, r *svgRenderer, l graph.Layout) {
	for _, n := range l.Nodes {
		fmt.Fprintf(buf,
			`  <circle class="circle" data-id="%s" data-leaf="%t" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
			escapeXML(n.ID), n.Leaf, n.X, n.Y, n.Radius,
			r.style.FillForDepth(n.Depth), r.style.FillOpacity,
			r.style.Stroke, r.style.StrokeWidth)
	}
}

func renderLinks(buf *bytes.Buffer, r *svgRenderer, l graph.Layout) {
	for _, p := range l.Paths {
		if len(p.Points) < 2 {
			continue
		}
		fmt.Fprintf(buf,
			`  <path class="link" data-source="%s" data-target="%s" d="%s" fill="none" stroke="%s" stroke-opacity="%.2f" stroke-width="%.2f"/>`+"\n",
			escapeXML(p.Source), escapeXML(p.Target), curveData(p.Points),
			r.style.EdgeColor, r.style.EdgeOpacity, r.style.EdgeWidth)
	}
}

// curveData builds a smooth path through the waypoints: each interior point
// becomes a quadratic control point with the segment midpoint as the curve
// target, so the drawn line bends around ancestors instead of jagging
// through them.
func curveData(pts []graph.Point) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "M %.2f %.2f", pts[0].X, pts[0].Y)
	if len(pts) == 2 {
		fmt.Fprintf(&b, " L %.2f %.2f", pts[1].X, pts[1].Y)
		return b.String()
	}
	for i := 1; i < len(pts)-1; i++ {
		mx := (pts[i].X + pts[i+1].X) / 2
		my := (pts[i].Y + pts[i+1].Y) / 2
		fmt.Fprintf(&b, " Q %.2f %.2f %.2f %.2f", pts[i].X, pts[i].Y, mx, my)
	}
	last := pts[len(pts)-1]
	fmt.Fprintf(&b, " L %.2f %.2f", last.X, last.Y)
	return b.String()
}

func renderLabels(buf *bytes.Buffer, r *svgRenderer, l graph.Layout) {
	for _, line := range l.Links {
		fmt.Fprintf(buf,
			`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
			line.X1, line.Y1, line.X2, line.Y2,
			r.style.LeaderColor, r.style.LeaderWidth)
	}
	for _, lb := range l.Labels {
		x := lb.X
		anchor := "start"
		if lb.Inside {
			x = lb.X + lb.Width/2
			anchor = "middle"
		}
		fmt.Fprintf(buf,
			`  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" fill="%s" text-anchor="%s" dominant-baseline="central">%s</text>`+"\n",
			x, lb.Y+lb.Height/2, escapeXML(r.style.FontFamily), r.style.FontSize,
			r.style.LabelColor, anchor, escapeXML(lb.Text))
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
