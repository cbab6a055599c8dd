// Package label decides where text labels sit relative to their circles.
//
// A label whose measured diagonal fits comfortably inside its circle is
// centered there and takes no further part in placement. Every other label
// is placed outside: a deterministic seeding step picks the least crowded of
// eight compass directions, then simulated annealing refines the arrangement
// against an energy function that charges for leader-line length, flipped
// orientation, label-label overlap, crossing leader lines, and, dominating
// all other terms, penetration into any circle of the rendered tree.
//
// Annealing is driven by a seeded PCG generator, so identical inputs with
// the same seed produce identical placements. There is no hard guarantee of
// zero overlap: the engine returns the lowest-energy state it found.
package label
