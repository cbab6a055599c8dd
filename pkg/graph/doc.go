// Package graph defines the canonical serialization format for cactuz
// documents and layouts.
//
// A Document is the flat input format: a list of node records (id, name,
// parent, optional weight) plus optional cross-link edges between arbitrary
// nodes. A Layout is the output format: positioned circles, placed labels,
// leader lines, and bundled edge paths, ready for a drawing consumer.
//
// Both formats are human-readable JSON designed for round-trip fidelity:
// import → layout → export → re-import produces identical results. All
// slices are emitted in deterministic order.
package graph
