package label

import (
	"math"

	"github.com/spren9er/cactuz-sub000/pkg/layout"
)

// sectorSize is the angular width of one attachment sector.
const sectorSize = math.Pi / 4

// sectorGrid maps a 45° sector index to a 3×3 grid position on the label
// rectangle (0=left/top, 1=middle, 2=right/bottom) in screen coordinates
// (y grows downward). A label sitting to the right of its anchor (sector 0)
// attaches at the middle of its left edge, a label below-right (sector 1)
// at its top-left corner, and so on around the compass.
var sectorGrid = [8][2]int{
	{0, 1}, // right of anchor: left-edge middle
	{0, 0}, // below-right: top-left corner
	{1, 0}, // below: top-edge middle
	{2, 0}, // below-left: top-right corner
	{2, 1}, // left: right-edge middle
	{2, 2}, // above-left: bottom-right corner
	{1, 2}, // above: bottom-edge middle
	{0, 2}, // above-right: bottom-left corner
}

// sectorOf buckets an angle (radians, any range) into one of eight 45°
// sectors centered on the compass directions.
func sectorOf(angle float64) int {
	a := math.Mod(angle+sectorSize/2, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return int(a/sectorSize) % 8
}

// attachmentGrid returns the grid position for the sector the label center
// currently occupies relative to the anchor.
func attachmentGrid(anchor Anchor, l Label) (int, int) {
	c := l.Center()
	g := sectorGrid[sectorOf(math.Atan2(c.Y-anchor.Y, c.X-anchor.X))]
	return g[0], g[1]
}

// attachmentPoint resolves a grid position to an absolute point on the
// label rectangle.
func attachmentPoint(l Label, gx, gy int) layout.Point {
	return layout.Point{
		X: l.X + float64(gx)*l.Width/2,
		Y: l.Y + float64(gy)*l.Height/2,
	}
}

// leaderFor builds the leader line for an outside label: from just off the
// circle perimeter, along the anchor→label direction, to the attachment
// point the current sector dictates.
func leaderFor(anchor Anchor, l Label, linkPadding float64) LeaderLine {
	c := l.Center()
	angle := math.Atan2(c.Y-anchor.Y, c.X-anchor.X)
	start := anchor.Radius + linkPadding
	gx, gy := attachmentGrid(anchor, l)
	end := attachmentPoint(l, gx, gy)
	return LeaderLine{
		X1: anchor.X + math.Cos(angle)*start,
		Y1: anchor.Y + math.Sin(angle)*start,
		X2: end.X,
		Y2: end.Y,
	}
}
