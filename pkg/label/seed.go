package label

import "math"

// seedDirections are the eight compass angles tried during initial outside
// placement, in a fixed order so seeding is fully deterministic.
var seedDirections = [8]float64{
	0,
	sectorSize,
	2 * sectorSize,
	3 * sectorSize,
	4 * sectorSize,
	5 * sectorSize,
	6 * sectorSize,
	7 * sectorSize,
}

// seedOutside places a label in the least crowded of the eight compass
// directions around its anchor. The candidate center sits past the perimeter,
// leader, and padding reaches by half the label's larger dimension, so the
// rectangle clears the leader end in any orientation. Crowding is the minimum
// signed clearance of that center to any other circle; the direction with the
// largest clearance wins, with ties broken by direction order.
func seedOutside(anchor Anchor, l *Label, obstacles []Anchor, opts Options) {
	dist := anchor.Radius + opts.LinkPadding + opts.LinkLength + opts.LabelPadding +
		math.Max(l.Width, l.Height)/2

	best := math.Inf(-1)
	for _, dir := range seedDirections {
		cx := anchor.X + math.Cos(dir)*dist
		cy := anchor.Y + math.Sin(dir)*dist

		clearance := math.Inf(1)
		for _, o := range obstacles {
			if o == anchor {
				continue
			}
			d := math.Hypot(cx-o.X, cy-o.Y) - o.Radius
			clearance = math.Min(clearance, d)
		}
		if clearance > best {
			best = clearance
			l.X, l.Y = cx-l.Width/2, cy-l.Height/2
		}
	}

	l.initX, l.initY = attachmentGrid(anchor, *l)
}
