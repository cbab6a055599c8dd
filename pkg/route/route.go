package route

import (
	"math"

	"github.com/spren9er/cactuz-sub000/pkg/graph"
	"github.com/spren9er/cactuz-sub000/pkg/layout"
	"github.com/spren9er/cactuz-sub000/pkg/tree"
)

// Edge-point modes for path endpoints.
const (
	// EdgePointCenter keeps path endpoints at the node centers.
	EdgePointCenter = "center"
	// EdgePointPerimeter projects path endpoints onto the circle boundary.
	EdgePointPerimeter = "perimeter"
)

// Router routes cross-links through one rendered layout. A Router is bound
// to the positions it was built from: after a relayout, construct a new one
// (this also discards the per-pair path memo, which would be stale).
type Router struct {
	tree *tree.Tree
	pos  map[string]layout.RenderedNode
	memo map[pairKey][]layout.Point
}

type pairKey struct {
	source, target string
}

// NewRouter creates a router for a tree and its rendered nodes.
func NewRouter(t *tree.Tree, nodes []layout.RenderedNode) *Router {
	pos := make(map[string]layout.RenderedNode, len(nodes))
	for _, n := range nodes {
		pos[n.ID] = n
	}
	return &Router{
		tree: t,
		pos:  pos,
		memo: make(map[pairKey][]layout.Point),
	}
}

// Node returns the rendered node for an id, if present in this layout.
func (r *Router) Node(id string) (layout.RenderedNode, bool) {
	n, ok := r.pos[id]
	return n, ok
}

// BuildPath returns the ordered waypoint path from source to target through
// their rendered ancestor positions: source, source-side ancestors, the
// lowest common ancestor (when distinct from both endpoints), target-side
// ancestors, target. Consecutive duplicate points are removed. Returns nil
// when neither endpoint resolves to a position.
func (r *Router) BuildPath(sourceID, targetID string) []layout.Point {
	key := pairKey{sourceID, targetID}
	if p, ok := r.memo[key]; ok {
		return p
	}
	p := r.buildPath(sourceID, targetID)
	r.memo[key] = p
	return p
}

func (r *Router) buildPath(sourceID, targetID string) []layout.Point {
	si, sok := r.tree.Lookup(sourceID)
	ti, tok := r.tree.Lookup(targetID)
	if !sok || !tok {
		return r.directSegment(sourceID, targetID)
	}

	lca := r.tree.LCA(si, ti)

	waypoints := []int{si}
	if si != lca {
		for j := r.tree.Node(si).Parent; j != lca; j = r.tree.Node(j).Parent {
			waypoints = append(waypoints, j)
		}
	}
	if lca != si && lca != ti {
		waypoints = append(waypoints, lca)
	}
	if ti != lca {
		var down []int
		for j := r.tree.Node(ti).Parent; j != lca; j = r.tree.Node(j).Parent {
			down = append(down, j)
		}
		for k := len(down) - 1; k >= 0; k-- {
			waypoints = append(waypoints, down[k])
		}
	}
	waypoints = append(waypoints, ti)

	points := make([]layout.Point, 0, len(waypoints))
	for _, w := range waypoints {
		p, ok := r.resolve(w)
		if !ok {
			continue
		}
		if n := len(points); n > 0 && points[n-1] == p {
			continue
		}
		points = append(points, p)
	}

	// Both endpoints must have resolved for the path to be meaningful.
	if len(points) < 2 {
		return r.directSegment(sourceID, targetID)
	}
	return points
}

// resolve maps an arena index to a rendered position, substituting the
// nearest rendered ancestor when the node itself was filtered out of the
// visible set.
func (r *Router) resolve(i int) (layout.Point, bool) {
	for j := i; j != tree.NoParent; j = r.tree.Node(j).Parent {
		if n, ok := r.pos[r.tree.Node(j).ID]; ok {
			return n.Center(), true
		}
	}
	return layout.Point{}, false
}

// directSegment is the last-resort fallback: the straight source→target
// segment, or nil when an endpoint has no position at all.
func (r *Router) directSegment(sourceID, targetID string) []layout.Point {
	s, sok := r.pos[sourceID]
	t, tok := r.pos[targetID]
	if !sok || !tok {
		return nil
	}
	if s.Center() == t.Center() {
		return []layout.Point{s.Center()}
	}
	return []layout.Point{s.Center(), t.Center()}
}

// Blend pulls the waypoint path toward the straight segment between its
// endpoints. Strength 0 returns exactly the two-point straight segment,
// strength 1 the path unchanged; intermediate values interpolate each
// waypoint toward its proportional position on the straight line.
func Blend(path []layout.Point, strength float64) []layout.Point {
	if len(path) == 0 {
		return nil
	}
	src, dst := path[0], path[len(path)-1]
	if strength <= 0 || len(path) == 1 {
		if src == dst {
			return []layout.Point{src}
		}
		return []layout.Point{src, dst}
	}
	out := make([]layout.Point, len(path))
	if strength >= 1 {
		copy(out, path)
		return out
	}
	n := float64(len(path) - 1)
	for i, p := range path {
		frac := float64(i) / n
		straight := lerp(src, dst, frac)
		out[i] = lerp(straight, p, strength)
	}
	return out
}

// ProjectPerimeter moves the first and last path points from the node
// centers onto the circle boundaries (radius plus half the stroke width),
// along the direction toward the adjacent waypoint, so the drawn curve
// touches the circle edge instead of its center.
func ProjectPerimeter(path []layout.Point, source, target layout.RenderedNode, strokeWidth float64) []layout.Point {
	if len(path) < 2 {
		return path
	}
	out := make([]layout.Point, len(path))
	copy(out, path)
	out[0] = project(source, path[1], strokeWidth)
	out[len(out)-1] = project(target, path[len(path)-2], strokeWidth)
	return out
}

func project(n layout.RenderedNode, toward layout.Point, strokeWidth float64) layout.Point {
	dx, dy := toward.X-n.X, toward.Y-n.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return n.Center()
	}
	r := n.Radius + strokeWidth/2
	return layout.Point{X: n.X + dx/dist*r, Y: n.Y + dy/dist*r}
}

// IsIncident reports whether the edge touches the given node.
// The interaction layer uses this to suppress cross-links not incident to a
// hovered leaf; links of a hovered non-leaf are never suppressed.
func IsIncident(e graph.EdgeRecord, nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// SuppressedByHover applies the hover filtering policy: a cross-link is
// suppressed only when the hovered node is a leaf and the edge is not
// incident to it.
func SuppressedByHover(e graph.EdgeRecord, hoverID string, hoverLeaf bool) bool {
	if hoverID == "" || !hoverLeaf {
		return false
	}
	return !IsIncident(e, hoverID)
}

func lerp(a, b layout.Point, t float64) layout.Point {
	return layout.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
