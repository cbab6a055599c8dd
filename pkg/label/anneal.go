package label

import (
	"math"
	"math/rand/v2"
)

// initialTemperature is the starting Metropolis temperature. Cooling is
// linear: after each sweep the temperature drops by T0/Sweeps, staying
// strictly positive through the final sweep.
const initialTemperature = 1.0

// anneal refines the movable labels in place by simulated annealing. Each
// sweep proposes one move per label: half the time a bounded translation,
// half the time a rotation about the label's anchor. Uphill moves are
// accepted with probability exp(-ΔE/T).
func (ev *evaluator) anneal(rng *rand.Rand) {
	sweeps := ev.opts.Sweeps
	if sweeps <= 0 || len(ev.labels) == 0 {
		return
	}

	temp := initialTemperature
	step := initialTemperature / float64(sweeps)

	for s := 0; s < sweeps; s++ {
		for range ev.labels {
			i := rng.IntN(len(ev.labels))
			before := ev.energy(i)
			saved := ev.labels[i]

			if rng.Float64() < 0.5 {
				ev.translate(i, rng)
			} else {
				ev.rotate(i, rng)
			}

			delta := ev.energy(i) - before
			if delta > 0 && rng.Float64() >= math.Exp(-delta/temp) {
				ev.labels[i] = saved
			}
		}
		temp -= step
	}
}

// translate shifts a label by up to half the move bound per axis.
func (ev *evaluator) translate(i int, rng *rand.Rand) {
	ev.labels[i].X += (rng.Float64() - 0.5) * ev.opts.MaxMove
	ev.labels[i].Y += (rng.Float64() - 0.5) * ev.opts.MaxMove
}

// rotate swings a label around its anchor by up to half the angle bound. The
// pivot is the label's current attachment point: that point is rotated about
// the anchor at constant distance and the whole rectangle is translated so
// the attachment point lands on its rotated position.
func (ev *evaluator) rotate(i int, rng *rand.Rand) {
	anchor := ev.anchors[i]
	l := &ev.labels[i]

	gx, gy := attachmentGrid(anchor, *l)
	p := attachmentPoint(*l, gx, gy)
	dx, dy := p.X-anchor.X, p.Y-anchor.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	angle := math.Atan2(dy, dx) + (rng.Float64()-0.5)*ev.opts.MaxAngle
	l.X += anchor.X + math.Cos(angle)*dist - p.X
	l.Y += anchor.Y + math.Sin(angle)*dist - p.Y
}

// newRNG builds the placement generator from the configured seed, matching
// the generator used elsewhere in the pipeline so a single seed reproduces
// the whole frame.
func newRNG(opts Options) *rand.Rand {
	if opts.Rand != nil {
		return opts.Rand
	}
	return rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef))
}
