package label

import "math"

// evaluator computes the local energy of one label against the current
// state. Fields are shared across the whole annealing run.
type evaluator struct {
	anchors   []Anchor // one per movable label, index-aligned
	labels    []Label  // movable labels, mutated in place by the annealer
	pinned    []Label  // carried over from a previous frame, immutable
	obstacles []Anchor // every circle of the rendered tree
	opts      Options
}

// energy is the local energy of label i: the sum of all terms that involve
// it. Moving label i changes the global energy by exactly the change in
// this quantity, which is all the Metropolis step needs.
func (ev *evaluator) energy(i int) float64 {
	w := ev.opts.Weights
	l := ev.labels[i]
	anchor := ev.anchors[i]

	leader := leaderFor(anchor, l, ev.opts.LinkPadding)
	e := w.LeaderLength * leader.Length()

	gx, gy := attachmentGrid(anchor, l)
	if gx != l.initX || gy != l.initY {
		e += w.Orientation
	}

	for j, other := range ev.labels {
		if j == i {
			continue
		}
		e += w.LabelOverlap * rectOverlapArea(l, other)
		if segmentsCross(leader, leaderFor(ev.anchors[j], other, ev.opts.LinkPadding)) {
			e += w.LeaderCross
		}
	}
	for _, other := range ev.pinned {
		e += w.LabelOverlap * rectOverlapArea(l, other)
	}

	for _, o := range ev.obstacles {
		pen := circlePenetration(o, l, ev.opts.AnchorPadding)
		e += w.AnchorOverlap * pen * pen
	}
	return e
}

// total sums the local energies of all movable labels. Pairwise terms count
// twice, which is harmless: the annealer only ever compares energies.
func (ev *evaluator) total() float64 {
	var e float64
	for i := range ev.labels {
		e += ev.energy(i)
	}
	return e
}

// rectOverlapArea returns the overlap area of two label rectangles.
func rectOverlapArea(a, b Label) float64 {
	ox := math.Min(a.X+a.Width, b.X+b.Width) - math.Max(a.X, b.X)
	oy := math.Min(a.Y+a.Height, b.Y+b.Height) - math.Max(a.Y, b.Y)
	if ox <= 0 || oy <= 0 {
		return 0
	}
	return ox * oy
}

// circlePenetration returns how deep a circle (inflated by pad) reaches
// into the label rectangle: the inflated radius minus the distance from the
// circle center to the nearest rectangle point, clamped at zero.
func circlePenetration(c Anchor, l Label, pad float64) float64 {
	nx := math.Max(l.X, math.Min(c.X, l.X+l.Width))
	ny := math.Max(l.Y, math.Min(c.Y, l.Y+l.Height))
	pen := c.Radius + pad - math.Hypot(c.X-nx, c.Y-ny)
	if pen < 0 {
		return 0
	}
	return pen
}

// segmentsCross reports whether two leader lines properly intersect.
// Shared endpoints and collinear touching do not count as a crossing.
func segmentsCross(a, b LeaderLine) bool {
	d1 := cross(b.X1, b.Y1, b.X2, b.Y2, a.X1, a.Y1)
	d2 := cross(b.X1, b.Y1, b.X2, b.Y2, a.X2, a.Y2)
	d3 := cross(a.X1, a.Y1, a.X2, a.Y2, b.X1, b.Y1)
	d4 := cross(a.X1, a.Y1, a.X2, a.Y2, b.X2, b.Y2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// cross is the z-component of (p2-p1)×(p3-p1).
func cross(x1, y1, x2, y2, x3, y3 float64) float64 {
	return (x2-x1)*(y3-y1) - (y2-y1)*(x3-x1)
}
