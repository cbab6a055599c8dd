// Package route builds bundled edge paths for non-hierarchical cross-links.
//
// A cross-link between two nodes is routed through the tree: up from the
// source through its ancestors to the lowest common ancestor, then down to
// the target. Each waypoint resolves to its rendered circle center, so the
// curve visually follows the hierarchy. A strength blend then pulls every
// waypoint toward the straight source→target segment: strength 0 is a pure
// straight line, strength 1 the unmodified tree path.
//
// Waypoints that are not part of the current rendered set substitute the
// position of their nearest rendered ancestor; when nothing resolves the
// path degrades to the direct two-point segment. No routing failure is an
// error.
package route
