package label

import (
	"math"
	"math/rand/v2"

	"github.com/spren9er/cactuz-sub000/pkg/layout"
)

// Defaults for placement options.
const (
	DefaultLabelLimit = 24
	DefaultMinRadius  = 8.0
	DefaultSweeps     = 80
	DefaultMaxMove    = 40.0
	DefaultMaxAngle   = math.Pi
	DefaultSeed       = uint64(42)

	defaultAnchorPadding = 2.0
	defaultLinkPadding   = 2.0
	defaultLinkLength    = 8.0
	defaultLabelPadding  = 2.0

	// insideFitRatio shrinks the usable circle diameter for the inside-fit
	// test, leaving breathing room around centered text.
	insideFitRatio = 0.9
)

// Anchor is the circle a label is attached to. It shares geometry with a
// rendered node but is decoupled for reuse.
type Anchor struct {
	X, Y, Radius float64
}

// Label is a placed text rectangle. X and Y are the top-left corner.
// Movable labels mutate during optimization; inside and pinned labels do
// not, but pinned ones still contribute to others' overlap energy.
type Label struct {
	Key           string
	Text          string
	X, Y          float64
	Width, Height float64
	AnchorPadding float64
	Inside        bool
	Pinned        bool

	// Initial orientation classes (left/center/right, top/middle/bottom)
	// of the rectangle side facing the anchor; changing class during
	// optimization costs the orientation penalty.
	initX, initY int
}

// Center returns the rectangle center.
func (l Label) Center() layout.Point {
	return layout.Point{X: l.X + l.Width/2, Y: l.Y + l.Height/2}
}

// LeaderLine connects a circle's perimeter to a label's attachment point.
type LeaderLine struct {
	X1, Y1, X2, Y2 float64
}

// Length returns the euclidean length of the leader line.
func (l LeaderLine) Length() float64 {
	return math.Hypot(l.X2-l.X1, l.Y2-l.Y1)
}

// Weights scale the energy terms. Higher means more strongly avoided.
type Weights struct {
	LeaderLength  float64 // per unit of leader-line length
	Orientation   float64 // flat penalty for flipped orientation class
	LabelOverlap  float64 // per unit of label-label overlap area
	LeaderCross   float64 // flat penalty per crossing leader pair
	AnchorOverlap float64 // per squared unit of circle penetration depth
}

// DefaultWeights keep circle occlusion dominant: a label overlapping any
// circle of the tree is penalized far harder than a long or crossing leader.
var DefaultWeights = Weights{
	LeaderLength:  0.1,
	Orientation:   1.0,
	LabelOverlap:  30.0,
	LeaderCross:   1.0,
	AnchorOverlap: 500.0,
}

// Options control label placement.
type Options struct {
	// LabelLimit caps how many nodes receive labels; the largest circles
	// win. The annealer is O(sweeps × labels × (labels + circles)), so the
	// cap keeps placement interactive.
	LabelLimit int

	// MinRadius excludes circles too small to label.
	MinRadius float64

	// Sweeps is the number of annealing sweeps; 0 keeps the deterministic
	// initial placement.
	Sweeps int

	// MaxMove bounds a translate proposal per axis: [-MaxMove/2, MaxMove/2].
	MaxMove float64

	// MaxAngle bounds a rotate-about-anchor proposal: [-MaxAngle/2, MaxAngle/2].
	MaxAngle float64

	// AnchorPadding inflates circles in the occlusion term.
	AnchorPadding float64

	// LinkPadding is the gap between the circle perimeter and the leader start.
	LinkPadding float64

	// LinkLength is the nominal leader length used for initial seeding.
	LinkLength float64

	// LabelPadding is extra clearance between leader end and label rectangle.
	LabelPadding float64

	// Seed drives the annealing RNG when Rand is nil. Defaults to 42 so
	// runs are reproducible by default.
	Seed uint64

	// Rand overrides the generator entirely (useful for tests).
	Rand *rand.Rand

	// Weights scale the energy terms; zero value uses DefaultWeights.
	Weights Weights

	// Measurer resolves text dimensions; defaults to the embedded Go
	// Regular face.
	Measurer Measurer
}

func (o Options) withDefaults() Options {
	if o.LabelLimit == 0 {
		o.LabelLimit = DefaultLabelLimit
	}
	if o.MinRadius == 0 {
		o.MinRadius = DefaultMinRadius
	}
	if o.Sweeps == 0 {
		o.Sweeps = DefaultSweeps
	}
	if o.MaxMove == 0 {
		o.MaxMove = DefaultMaxMove
	}
	if o.MaxAngle == 0 {
		o.MaxAngle = DefaultMaxAngle
	}
	if o.AnchorPadding == 0 {
		o.AnchorPadding = defaultAnchorPadding
	}
	if o.LinkPadding == 0 {
		o.LinkPadding = defaultLinkPadding
	}
	if o.LinkLength == 0 {
		o.LinkLength = defaultLinkLength
	}
	if o.LabelPadding == 0 {
		o.LabelPadding = defaultLabelPadding
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Weights == (Weights{}) {
		o.Weights = DefaultWeights
	}
	if o.Measurer == nil {
		o.Measurer = DefaultMeasurer()
	}
	return o
}

// NoSweeps disables annealing without tripping the zero-value default.
// Use as Options{Sweeps: NoSweeps} to assert deterministic seeding.
const NoSweeps = -1

// Result is the output of one placement pass.
type Result struct {
	Labels []Label
	Links  []LeaderLine
}

// CanFitInsideCircle reports whether a w×h rectangle fits inside a circle
// of the given radius with the standard breathing margin.
func CanFitInsideCircle(w, h, radius float64) bool {
	return math.Hypot(w, h) <= 2*radius*insideFitRatio
}
