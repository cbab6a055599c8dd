// Package tree builds a doubly-navigable hierarchy from a flat node list.
//
// The tree is stored as an arena: a flat slice of nodes addressed by integer
// index, with parent links as indices rather than pointers. Upward traversal
// is array indexing, so no reference cycles can form and trees serialize and
// compare trivially in tests.
//
// Malformed input never errors. Records whose parent cannot be resolved are
// dropped as unreachable orphans, an empty input yields a synthetic
// placeholder root, and duplicate ids keep their first occurrence.
//
// Subtree weights follow the layout invariant: an explicit positive weight
// wins, a leaf defaults to 1, and an interior node is the sum of its
// children. Weights are memoized lazily and invalidated per layout pass.
package tree
