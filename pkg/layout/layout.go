package layout

import (
	"math"
	"slices"

	"github.com/spren9er/cactuz-sub000/pkg/tree"
)

// Defaults for layout options.
const (
	DefaultArcSpan        = math.Pi
	DefaultSizeGrowthRate = 0.75
	DefaultZoom           = 1.0

	// gapFraction is the share of the arc span reserved as spacing
	// between sibling circles.
	gapFraction = 0.1

	// fitMargin keeps the fitted layout slightly inside the viewport.
	fitMargin = 0.95
)

// Point is a 2D coordinate in layout space.
type Point struct {
	X, Y float64
}

// RenderedNode is a positioned, sized circle produced by one layout pass.
// Values are immutable once emitted except for the uniform rescale and
// translate that Fit applies as its second pass.
type RenderedNode struct {
	Index  int // arena index into the source tree
	ID     string
	Name   string
	X, Y   float64
	Radius float64
	Depth  int     // root = 0
	Angle  float64 // direction from parent in radians; start angle for the root
	Leaf   bool
}

// Center returns the circle center as a Point.
func (n RenderedNode) Center() Point { return Point{n.X, n.Y} }

// Options control a layout pass.
type Options struct {
	// Overlap controls the radial distance between parent and child:
	// 0 = circles touch, 1 = concentric, negative = extra gap.
	Overlap float64

	// ArcSpan is the total angular sector (radians) a node allots to its
	// children. Defaults to π.
	ArcSpan float64

	// SizeGrowthRate is the exponent in radius = weight^rate.
	// Defaults to 0.75; values outside (0,1] fall back to the default.
	SizeGrowthRate float64

	// StartAngle is the orientation of the root's sector in radians.
	StartAngle float64

	// Zoom is the user scale multiplier applied during fitting. Defaults to 1.
	Zoom float64
}

func (o Options) withDefaults() Options {
	if o.ArcSpan == 0 {
		o.ArcSpan = DefaultArcSpan
	}
	if o.SizeGrowthRate <= 0 || o.SizeGrowthRate > 1 {
		o.SizeGrowthRate = DefaultSizeGrowthRate
	}
	if o.Zoom <= 0 {
		o.Zoom = DefaultZoom
	}
	return o
}

// Radius converts a subtree weight to a circle radius.
// Strictly increasing in weight for any positive growth rate.
func Radius(weight, growthRate float64) float64 {
	return math.Pow(weight, growthRate)
}

// Render lays out the tree with the root circle centered at (cx, cy) and the
// root sector oriented at startAngle. Positions are in natural (unscaled)
// layout units; use Fit to scale into a viewport. Nodes are emitted in
// pre-order.
func Render(t *tree.Tree, cx, cy, startAngle float64, opts Options) []RenderedNode {
	opts = opts.withDefaults()
	t.InvalidateWeights()
	out := make([]RenderedNode, 0, t.Len())
	emit(t, t.Root(), cx, cy, startAngle, 0, opts, &out)
	return out
}

// Fit runs the two-pass scale fit: a canonical probe pass measures the
// natural bounding box, the real pass renders with the requested options,
// and the result is uniformly rescaled and centered in a width×height
// viewport. The returned nodes are sorted by depth ascending.
func Fit(t *tree.Tree, width, height float64, opts Options) []RenderedNode {
	opts = opts.withDefaults()

	probe := opts
	probe.Overlap = 0
	probe.ArcSpan = DefaultArcSpan
	scale := fitScale(BoundsOf(Render(t, 0, 0, opts.StartAngle, probe)), width, height, opts.Zoom)

	nodes := Render(t, 0, 0, opts.StartAngle, opts)
	for i := range nodes {
		nodes[i].X *= scale
		nodes[i].Y *= scale
		nodes[i].Radius *= scale
	}

	bb := BoundsOf(nodes)
	dx := width/2 - (bb.MinX+bb.MaxX)/2
	dy := height/2 - (bb.MinY+bb.MaxY)/2
	for i := range nodes {
		nodes[i].X += dx
		nodes[i].Y += dy
	}

	slices.SortStableFunc(nodes, func(a, b RenderedNode) int { return a.Depth - b.Depth })
	return nodes
}

// emit is the recursive per-node step. The node at (x, y) with incoming
// direction alpha claims its radius, then subdivides its arc span among its
// children by diameter, advancing an angular cursor in half-steps so each
// child sits centered in its slot.
func emit(t *tree.Tree, i int, x, y, alpha float64, depth int, opts Options, out *[]RenderedNode) {
	n := t.Node(i)
	r := Radius(t.Weight(i), opts.SizeGrowthRate)
	kids := n.Children

	childRadius := make([]float64, len(kids))
	totalArc := 0.0
	for k, c := range kids {
		childRadius[k] = Radius(t.Weight(c), opts.SizeGrowthRate)
		totalArc += 2 * childRadius[k]
	}

	gap := opts.ArcSpan * gapFraction
	spacePerUnit := 0.0
	if totalArc > 0 {
		// totalArc can only be zero for radius-zero children, which weight
		// >= 1 rules out; guarded anyway so a degenerate input collapses
		// children onto the parent instead of dividing by zero.
		spacePerUnit = (opts.ArcSpan - gap) / totalArc
	}

	*out = append(*out, RenderedNode{
		Index:  i,
		ID:     n.ID,
		Name:   n.Name,
		X:      x,
		Y:      y,
		Radius: r,
		Depth:  depth,
		Angle:  alpha,
		Leaf:   len(kids) == 0,
	})
	if len(kids) == 0 {
		return
	}

	weights := make([]float64, len(kids))
	for k, c := range kids {
		weights[k] = t.Weight(c)
	}
	order := orderMaxInCenter(indices(len(kids)), func(k int) float64 { return weights[k] })

	childAlpha := alpha - opts.ArcSpan/2
	for _, k := range order {
		cr := childRadius[k]
		span := 2*cr*spacePerUnit + gap/float64(len(kids))
		childAlpha += span / 2
		dist := r + cr*(1-2*opts.Overlap)
		cx := x + dist*math.Cos(childAlpha)
		cy := y + dist*math.Sin(childAlpha)
		emit(t, kids[k], cx, cy, childAlpha, depth+1, opts, out)
		childAlpha += span / 2
	}
}

func fitScale(bb BBox, width, height, zoom float64) float64 {
	bw, bh := bb.Width(), bb.Height()
	if bw <= 0 || bh <= 0 {
		return zoom * fitMargin
	}
	return math.Min(width/bw, height/bh) * zoom * fitMargin
}

func indices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
