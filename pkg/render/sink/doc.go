// Package sink renders computed layouts to output formats.
//
// Available sinks:
//   - [RenderSVG]: scalable vector output with optional hover interaction
//   - [RenderPNG]: raster output drawn directly at configurable scale
//   - [RenderJSON]: the layout data itself, for external tools and caching
package sink
