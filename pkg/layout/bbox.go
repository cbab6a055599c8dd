package layout

import "math"

// BBox is an axis-aligned bounding box in layout space.
type BBox struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Width returns the horizontal span of the box.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical span of the box.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// BoundsOf computes the bounding box of a set of circles: the min/max of
// each center coordinate plus/minus the radius. An empty set yields the
// zero box.
func BoundsOf(nodes []RenderedNode) BBox {
	if len(nodes) == 0 {
		return BBox{}
	}
	bb := BBox{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for _, n := range nodes {
		bb.MinX = math.Min(bb.MinX, n.X-n.Radius)
		bb.MaxX = math.Max(bb.MaxX, n.X+n.Radius)
		bb.MinY = math.Min(bb.MinY, n.Y-n.Radius)
		bb.MaxY = math.Max(bb.MaxY, n.Y+n.Radius)
	}
	return bb
}
