package label

import (
	"slices"
	"sync"

	"github.com/spren9er/cactuz-sub000/pkg/layout"
)

// Engine places labels for a sequence of frames over the same tree. Labels
// placed in one frame are pinned in the next, so interactive relayouts keep
// text where the eye already found it. A fresh Engine (or Reset) starts
// from scratch.
type Engine struct {
	mu   sync.Mutex
	prev map[string]Label
}

// NewEngine returns an engine with no placement history.
func NewEngine() *Engine {
	return &Engine{prev: make(map[string]Label)}
}

// Reset drops all pinned positions.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prev = make(map[string]Label)
}

// Place computes labels for a single frame with no history.
func Place(nodes []layout.RenderedNode, opts Options) Result {
	return NewEngine().Place(nodes, opts)
}

// Place labels the largest circles of a rendered frame.
//
// Candidates are the nodes with radius at least MinRadius, largest first,
// capped at LabelLimit. A label that fits inside its circle is centered
// there. Outside labels carried over from the previous frame keep their
// position (pinned) unless they collide with an earlier pinned label, in
// which case they are demoted and placed again. Remaining outside labels
// are seeded deterministically and refined by annealing. Every circle of
// the frame, labeled or not, acts as an obstacle.
//
// Result.Links holds one leader line per outside label, in the order those
// labels appear in Result.Labels.
func (e *Engine) Place(nodes []layout.RenderedNode, opts Options) Result {
	opts = opts.withDefaults()

	obstacles := make([]Anchor, len(nodes))
	for i, n := range nodes {
		obstacles[i] = Anchor{X: n.X, Y: n.Y, Radius: n.Radius}
	}

	candidates := make([]layout.RenderedNode, 0, len(nodes))
	for _, n := range nodes {
		if n.Radius >= opts.MinRadius {
			candidates = append(candidates, n)
		}
	}
	slices.SortStableFunc(candidates, func(a, b layout.RenderedNode) int {
		switch {
		case a.Radius > b.Radius:
			return -1
		case a.Radius < b.Radius:
			return 1
		default:
			return 0
		}
	})
	if len(candidates) > opts.LabelLimit {
		candidates = candidates[:opts.LabelLimit]
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var (
		inside  []Label
		pinned  []Label
		movable []Label
		anchors []Anchor
	)
	for _, n := range candidates {
		w, h := opts.Measurer.Measure(n.Name)
		anchor := Anchor{X: n.X, Y: n.Y, Radius: n.Radius}

		if CanFitInsideCircle(w, h, n.Radius) {
			inside = append(inside, Label{
				Key: n.ID, Text: n.Name,
				X: n.X - w/2, Y: n.Y - h/2,
				Width: w, Height: h,
				Inside: true,
			})
			continue
		}

		if p, ok := e.prev[n.ID]; ok && p.Width == w && p.Height == h {
			p.Pinned = true
			if !collidesWithPinned(p, pinned) {
				pinned = append(pinned, p)
				continue
			}
			// Demoted: place again from scratch below.
		}

		l := Label{
			Key: n.ID, Text: n.Name,
			Width: w, Height: h,
			AnchorPadding: opts.AnchorPadding,
		}
		seedOutside(anchor, &l, obstacles, opts)
		movable = append(movable, l)
		anchors = append(anchors, anchor)
	}

	ev := &evaluator{
		anchors:   anchors,
		labels:    movable,
		pinned:    pinned,
		obstacles: obstacles,
		opts:      opts,
	}
	ev.anneal(newRNG(opts))

	labels := make([]Label, 0, len(inside)+len(pinned)+len(ev.labels))
	labels = append(labels, inside...)
	labels = append(labels, pinned...)
	labels = append(labels, ev.labels...)

	links := make([]LeaderLine, 0, len(pinned)+len(ev.labels))
	e.prev = make(map[string]Label, len(labels))
	for _, l := range labels {
		if !l.Inside {
			links = append(links, leaderFor(e.anchorFor(l, candidates), l, opts.LinkPadding))
			e.prev[l.Key] = Label{
				Key: l.Key, Text: l.Text,
				X: l.X, Y: l.Y,
				Width: l.Width, Height: l.Height,
				AnchorPadding: l.AnchorPadding,
				initX:         l.initX, initY: l.initY,
			}
		}
	}

	return Result{Labels: labels, Links: links}
}

// collidesWithPinned reports whether a carried-over label overlaps any
// already accepted pinned label.
func collidesWithPinned(l Label, pinned []Label) bool {
	for _, p := range pinned {
		if rectOverlapArea(l, p) > 0 {
			return true
		}
	}
	return false
}

// anchorFor finds the circle a label belongs to.
func (e *Engine) anchorFor(l Label, candidates []layout.RenderedNode) Anchor {
	for _, n := range candidates {
		if n.ID == l.Key {
			return Anchor{X: n.X, Y: n.Y, Radius: n.Radius}
		}
	}
	return Anchor{X: l.X + l.Width/2, Y: l.Y + l.Height/2}
}
