package graph

// =============================================================================
// Input Records
// =============================================================================

// NodeRecord is one row of the flat input format.
// A record with an empty Parent is a root candidate; all other records must
// name a parent present in the same document or they are dropped as orphans
// during hierarchy building.
type NodeRecord struct {
	ID     string  `json:"id" bson:"id"`
	Name   string  `json:"name,omitempty" bson:"name,omitempty"`
	Parent string  `json:"parent,omitempty" bson:"parent,omitempty"`
	Weight float64 `json:"weight,omitempty" bson:"weight,omitempty"` // explicit subtree weight; 0 = derived
}

// DisplayName returns the name if set, otherwise the ID.
func (n NodeRecord) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// EdgeRecord is a non-hierarchical cross-link between two nodes.
// Edges are purely descriptive: they never affect the layout, only the
// bundled curves drawn between the two endpoints.
type EdgeRecord struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
}

// Document is the canonical input format: a flat node list plus cross-links.
type Document struct {
	Nodes []NodeRecord `json:"nodes" bson:"nodes"`
	Edges []EdgeRecord `json:"edges,omitempty" bson:"edges,omitempty"`
}

// =============================================================================
// Output Records
// =============================================================================

// PlacedNode is a positioned, sized circle in layout space.
// Nodes are emitted sorted by depth ascending so a draw consumer can paint
// parents before children.
type PlacedNode struct {
	ID     string  `json:"id" bson:"id"`
	Name   string  `json:"name,omitempty" bson:"name,omitempty"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Radius float64 `json:"radius" bson:"radius"`
	Depth  int     `json:"depth" bson:"depth"`
	Angle  float64 `json:"angle" bson:"angle"` // direction from parent, radians
	Leaf   bool    `json:"leaf,omitempty" bson:"leaf,omitempty"`
}

// PlacedLabel is a resolved text label. Inside labels sit centered in their
// circle and carry no leader line; outside labels reference one entry in
// Layout.Links by index.
type PlacedLabel struct {
	Key    string  `json:"key" bson:"key"`
	Text   string  `json:"text" bson:"text"`
	X      float64 `json:"x" bson:"x"` // top-left
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Inside bool    `json:"inside,omitempty" bson:"inside,omitempty"`
	Link   int     `json:"link,omitempty" bson:"link,omitempty"` // index into Links; -1 for inside labels
}

// LeaderLine connects a circle's perimeter to a label's attachment point.
type LeaderLine struct {
	X1 float64 `json:"x1" bson:"x1"`
	Y1 float64 `json:"y1" bson:"y1"`
	X2 float64 `json:"x2" bson:"x2"`
	Y2 float64 `json:"y2" bson:"y2"`
}

// Point is a 2D coordinate in layout space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// EdgePath is the bundled waypoint polyline for one cross-link, after
// strength blending. A drawing consumer connects consecutive points with
// quadratic curves through their midpoints.
type EdgePath struct {
	Source string  `json:"source" bson:"source"`
	Target string  `json:"target" bson:"target"`
	Points []Point `json:"points" bson:"points"`
}

// Layout is the complete serializable result of one layout pass.
type Layout struct {
	FrameWidth  float64       `json:"frame_width" bson:"frame_width"`
	FrameHeight float64       `json:"frame_height" bson:"frame_height"`
	Seed        uint64        `json:"seed,omitempty" bson:"seed,omitempty"`
	Style       string        `json:"style,omitempty" bson:"style,omitempty"`
	Nodes       []PlacedNode  `json:"nodes" bson:"nodes"`
	Labels      []PlacedLabel `json:"labels,omitempty" bson:"labels,omitempty"`
	Links       []LeaderLine  `json:"links,omitempty" bson:"links,omitempty"`
	Paths       []EdgePath    `json:"paths,omitempty" bson:"paths,omitempty"`
}
