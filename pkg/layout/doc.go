// Package layout computes the fractal circle arrangement for a weighted tree.
//
// Every node becomes a circle whose radius is its subtree weight raised to a
// configurable growth exponent. Children are distributed over an angular
// sector around their parent: each child claims arc space proportional to its
// diameter, with 10% of the sector reserved as gap space, and the heaviest
// child is steered to the angular center of the sector.
//
// The natural layout has no fixed scale, so Fit renders twice: a canonical
// probe pass (overlap 0, arc span π) measures the bounding box, from which a
// global scale is derived; the real pass then runs with the requested
// options and is uniformly rescaled and centered in the viewport.
//
// Output is sorted by depth ascending so a draw consumer paints parents
// before children.
package layout
