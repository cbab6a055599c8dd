package label

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/spren9er/cactuz-sub000/pkg/layout"
)

func TestCanFitInsideCircle(t *testing.T) {
	tests := []struct {
		name   string
		w, h   float64
		radius float64
		want   bool
	}{
		{"small label in large circle", 20, 12, 100, true},
		{"same label in tiny circle", 20, 12, 5, false},
		{"diagonal exactly at margin", 18, 0, 10, true},
		{"diagonal just over margin", 18.1, 0, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanFitInsideCircle(tt.w, tt.h, tt.radius); got != tt.want {
				t.Errorf("CanFitInsideCircle(%v, %v, %v) = %v, want %v",
					tt.w, tt.h, tt.radius, got, tt.want)
			}
		})
	}
}

func TestSectorOf(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  int
	}{
		{"east", 0, 0},
		{"south", math.Pi / 2, 2},
		{"west", math.Pi, 4},
		{"north", -math.Pi / 2, 6},
		{"north positive alias", 3 * math.Pi / 2, 6},
		{"full turn wraps", 2 * math.Pi, 0},
		{"slightly below east", -0.1, 0},
		{"southeast", math.Pi / 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sectorOf(tt.angle); got != tt.want {
				t.Errorf("sectorOf(%v) = %d, want %d", tt.angle, got, tt.want)
			}
		})
	}
}

func TestAttachmentPoint(t *testing.T) {
	l := Label{X: 10, Y: 20, Width: 40, Height: 10}
	tests := []struct {
		name   string
		gx, gy int
		want   layout.Point
	}{
		{"top-left", 0, 0, layout.Point{X: 10, Y: 20}},
		{"left-edge middle", 0, 1, layout.Point{X: 10, Y: 25}},
		{"center", 1, 1, layout.Point{X: 30, Y: 25}},
		{"bottom-right", 2, 2, layout.Point{X: 50, Y: 30}},
		{"top-edge middle", 1, 0, layout.Point{X: 30, Y: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := attachmentPoint(l, tt.gx, tt.gy); got != tt.want {
				t.Errorf("attachmentPoint(%d, %d) = %+v, want %+v", tt.gx, tt.gy, got, tt.want)
			}
		})
	}
}

func TestLeaderLineLength(t *testing.T) {
	l := LeaderLine{X1: 0, Y1: 0, X2: 3, Y2: 4}
	if got := l.Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
}

func TestLeaderForEndpoints(t *testing.T) {
	// Label centered due east of the anchor: the leader starts just off the
	// perimeter on the east side and ends at the label's left-edge middle.
	anchor := Anchor{X: 0, Y: 0, Radius: 10}
	l := Label{X: 30, Y: -5, Width: 20, Height: 10}

	got := leaderFor(anchor, l, 2)
	want := LeaderLine{X1: 12, Y1: 0, X2: 30, Y2: 0}
	if math.Abs(got.X1-want.X1) > 1e-9 || math.Abs(got.Y1-want.Y1) > 1e-9 ||
		math.Abs(got.X2-want.X2) > 1e-9 || math.Abs(got.Y2-want.Y2) > 1e-9 {
		t.Errorf("leaderFor() = %+v, want %+v", got, want)
	}
}

func TestRectOverlapArea(t *testing.T) {
	tests := []struct {
		name string
		a, b Label
		want float64
	}{
		{
			"disjoint",
			Label{X: 0, Y: 0, Width: 10, Height: 10},
			Label{X: 20, Y: 20, Width: 10, Height: 10},
			0,
		},
		{
			"touching edges",
			Label{X: 0, Y: 0, Width: 10, Height: 10},
			Label{X: 10, Y: 0, Width: 10, Height: 10},
			0,
		},
		{
			"quarter overlap",
			Label{X: 0, Y: 0, Width: 10, Height: 10},
			Label{X: 5, Y: 5, Width: 10, Height: 10},
			25,
		},
		{
			"contained",
			Label{X: 0, Y: 0, Width: 10, Height: 10},
			Label{X: 2, Y: 2, Width: 4, Height: 4},
			16,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rectOverlapArea(tt.a, tt.b); got != tt.want {
				t.Errorf("rectOverlapArea() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentsCross(t *testing.T) {
	tests := []struct {
		name string
		a, b LeaderLine
		want bool
	}{
		{
			"crossing diagonals",
			LeaderLine{X1: 0, Y1: 0, X2: 10, Y2: 10},
			LeaderLine{X1: 0, Y1: 10, X2: 10, Y2: 0},
			true,
		},
		{
			"parallel",
			LeaderLine{X1: 0, Y1: 0, X2: 10, Y2: 0},
			LeaderLine{X1: 0, Y1: 5, X2: 10, Y2: 5},
			false,
		},
		{
			"shared endpoint",
			LeaderLine{X1: 0, Y1: 0, X2: 10, Y2: 10},
			LeaderLine{X1: 10, Y1: 10, X2: 20, Y2: 0},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segmentsCross(tt.a, tt.b); got != tt.want {
				t.Errorf("segmentsCross() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCirclePenetration(t *testing.T) {
	l := Label{X: 10, Y: 10, Width: 20, Height: 10}
	tests := []struct {
		name string
		c    Anchor
		pad  float64
		want float64
	}{
		{"far away", Anchor{X: 100, Y: 100, Radius: 5}, 0, 0},
		{"center inside rect", Anchor{X: 20, Y: 15, Radius: 5}, 0, 5},
		{"grazing from left", Anchor{X: 0, Y: 15, Radius: 12}, 0, 2},
		{"padding pushes into contact", Anchor{X: 0, Y: 15, Radius: 8}, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := circlePenetration(tt.c, l, tt.pad); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("circlePenetration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func testNodes() []layout.RenderedNode {
	return []layout.RenderedNode{
		{Index: 0, ID: "root", Name: "rt", X: 400, Y: 300, Radius: 120, Depth: 0},
		{Index: 1, ID: "a", Name: "alphabetical", X: 320, Y: 300, Radius: 30, Depth: 1, Leaf: true},
		{Index: 2, ID: "b", Name: "bc", X: 480, Y: 300, Radius: 25, Depth: 1, Leaf: true},
		{Index: 3, ID: "tiny", Name: "t", X: 400, Y: 420, Radius: 2, Depth: 1, Leaf: true},
	}
}

func testOptions() Options {
	return Options{
		Measurer: FixedMeasurer{CharWidth: 6, LineHeight: 12},
		Sweeps:   NoSweeps,
	}
}

func TestPlaceInsideLabelIsCentered(t *testing.T) {
	res := Place(testNodes(), testOptions())

	var root *Label
	for i := range res.Labels {
		if res.Labels[i].Key == "root" {
			root = &res.Labels[i]
		}
	}
	if root == nil {
		t.Fatal("no label placed for root")
	}
	if !root.Inside {
		t.Fatalf("root label should fit inside radius 120, got outside")
	}
	if cx := root.X + root.Width/2; cx != 400 {
		t.Errorf("inside label center x = %v, want 400", cx)
	}
	if cy := root.Y + root.Height/2; cy != 300 {
		t.Errorf("inside label center y = %v, want 300", cy)
	}
}

func TestPlaceSkipsSmallCircles(t *testing.T) {
	res := Place(testNodes(), testOptions())
	for _, l := range res.Labels {
		if l.Key == "tiny" {
			t.Errorf("circle below MinRadius received a label")
		}
	}
}

func TestPlaceLabelLimit(t *testing.T) {
	nodes := make([]layout.RenderedNode, 10)
	for i := range nodes {
		nodes[i] = layout.RenderedNode{
			ID: string(rune('a' + i)), Name: "label text here",
			X: float64(i) * 100, Y: 0, Radius: 20 + float64(i),
		}
	}
	opts := testOptions()
	opts.LabelLimit = 3
	res := Place(nodes, opts)
	if len(res.Labels) != 3 {
		t.Fatalf("got %d labels, want 3", len(res.Labels))
	}
	// The three largest circles win.
	want := map[string]bool{"h": true, "i": true, "j": true}
	for _, l := range res.Labels {
		if !want[l.Key] {
			t.Errorf("unexpected label for %q, want only the three largest", l.Key)
		}
	}
}

func TestPlaceOutsideLabelsGetLeaders(t *testing.T) {
	res := Place(testNodes(), testOptions())

	var outside int
	for _, l := range res.Labels {
		if !l.Inside {
			outside++
		}
	}
	if outside == 0 {
		t.Fatal("expected at least one outside label")
	}
	if len(res.Links) != outside {
		t.Fatalf("got %d leader lines for %d outside labels", len(res.Links), outside)
	}
	for i, link := range res.Links {
		if link.Length() == 0 {
			t.Errorf("leader %d has zero length", i)
		}
	}
}

func TestPlaceDeterministic(t *testing.T) {
	opts := testOptions()
	opts.Sweeps = 40

	a := Place(testNodes(), opts)
	b := Place(testNodes(), opts)
	if len(a.Labels) != len(b.Labels) {
		t.Fatalf("label counts differ: %d vs %d", len(a.Labels), len(b.Labels))
	}
	for i := range a.Labels {
		if a.Labels[i] != b.Labels[i] {
			t.Errorf("label %d differs between identical runs:\n%+v\n%+v",
				i, a.Labels[i], b.Labels[i])
		}
	}
}

func TestPlaceSeedChangesOutcome(t *testing.T) {
	nodes := []layout.RenderedNode{
		{ID: "a", Name: "first label text", X: 100, Y: 100, Radius: 20},
		{ID: "b", Name: "second label text", X: 150, Y: 100, Radius: 20},
		{ID: "c", Name: "third label text", X: 125, Y: 140, Radius: 20},
	}
	opts := testOptions()
	opts.Sweeps = 60
	a := Place(nodes, opts)

	opts.Seed = 7
	b := Place(nodes, opts)

	same := true
	for i := range a.Labels {
		if a.Labels[i] != b.Labels[i] {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical annealed placements")
	}
}

func TestEnginePinsAcrossFrames(t *testing.T) {
	eng := NewEngine()
	opts := testOptions()
	opts.Sweeps = 40

	first := eng.Place(testNodes(), opts)
	second := eng.Place(testNodes(), opts)

	pos := make(map[string][2]float64)
	for _, l := range first.Labels {
		if !l.Inside {
			pos[l.Key] = [2]float64{l.X, l.Y}
		}
	}
	for _, l := range second.Labels {
		if l.Inside {
			continue
		}
		if !l.Pinned {
			t.Errorf("label %q not pinned on second frame", l.Key)
		}
		if p, ok := pos[l.Key]; ok && (p[0] != l.X || p[1] != l.Y) {
			t.Errorf("pinned label %q moved: (%v,%v) -> (%v,%v)",
				l.Key, p[0], p[1], l.X, l.Y)
		}
	}
}

func TestEngineResetDropsPins(t *testing.T) {
	eng := NewEngine()
	opts := testOptions()

	eng.Place(testNodes(), opts)
	eng.Reset()
	res := eng.Place(testNodes(), opts)
	for _, l := range res.Labels {
		if l.Pinned {
			t.Errorf("label %q pinned after Reset", l.Key)
		}
	}
}

func TestSeedOutsidePicksClearestDirection(t *testing.T) {
	// A wall of circles to the left should push the label to the right.
	anchor := Anchor{X: 0, Y: 0, Radius: 10}
	obstacles := []Anchor{
		anchor,
		{X: -60, Y: 0, Radius: 40},
		{X: -60, Y: -60, Radius: 40},
		{X: -60, Y: 60, Radius: 40},
	}
	l := Label{Key: "x", Text: "x", Width: 30, Height: 10}
	seedOutside(anchor, &l, obstacles, Options{}.withDefaults())

	if c := l.Center(); c.X <= 0 {
		t.Errorf("label seeded at center x = %v, want right of the crowded side", c.X)
	}
}

func TestSeedOutsideCenterDistance(t *testing.T) {
	// With no obstacles every direction ties and the first one wins. The
	// seeded center sits at radius plus the leader and padding reaches plus
	// half the label's larger dimension.
	anchor := Anchor{X: 0, Y: 0, Radius: 10}
	opts := Options{}.withDefaults()
	l := Label{Key: "x", Text: "x", Width: 30, Height: 10}
	seedOutside(anchor, &l, []Anchor{anchor}, opts)

	want := anchor.Radius + opts.LinkPadding + opts.LinkLength + opts.LabelPadding +
		math.Max(l.Width, l.Height)/2
	c := l.Center()
	if got := math.Hypot(c.X-anchor.X, c.Y-anchor.Y); math.Abs(got-want) > 1e-9 {
		t.Errorf("seeded center distance = %v, want %v", got, want)
	}
	if math.Abs(c.Y) > 1e-9 || c.X <= 0 {
		t.Errorf("seeded center = %+v, want on the positive x axis", c)
	}
}

func TestRotatePivotsAttachmentPoint(t *testing.T) {
	// A rotation move must keep the pre-move attachment point at a constant
	// distance from the anchor; only its angle changes.
	anchor := Anchor{X: 0, Y: 0, Radius: 10}
	ev := &evaluator{
		anchors: []Anchor{anchor},
		labels:  []Label{{Key: "x", X: 30, Y: -5, Width: 20, Height: 10}},
		opts:    Options{}.withDefaults(),
	}
	gx, gy := attachmentGrid(anchor, ev.labels[0])
	before := attachmentPoint(ev.labels[0], gx, gy)
	dist := math.Hypot(before.X-anchor.X, before.Y-anchor.Y)

	ev.rotate(0, rand.New(rand.NewPCG(3, 5)))

	after := attachmentPoint(ev.labels[0], gx, gy)
	if got := math.Hypot(after.X-anchor.X, after.Y-anchor.Y); math.Abs(got-dist) > 1e-9 {
		t.Errorf("attachment point distance = %v after rotation, want %v", got, dist)
	}
	if after == before {
		t.Error("rotation left the label unmoved")
	}
}

func TestFixedMeasurer(t *testing.T) {
	m := FixedMeasurer{CharWidth: 7, LineHeight: 14}
	w, h := m.Measure("abcd")
	if w != 28 || h != 14 {
		t.Errorf("Measure(abcd) = (%v, %v), want (28, 14)", w, h)
	}
}

func TestFaceMeasurer(t *testing.T) {
	m := DefaultMeasurer()
	w, h := m.Measure("hello")
	if w <= 0 || h <= 0 {
		t.Fatalf("Measure(hello) = (%v, %v), want positive dimensions", w, h)
	}
	w2, _ := m.Measure("hello world")
	if w2 <= w {
		t.Errorf("longer text measured narrower: %v <= %v", w2, w)
	}
	if m.Ascent() <= 0 || m.Ascent() > h {
		t.Errorf("ascent %v out of range (0, %v]", m.Ascent(), h)
	}
}
