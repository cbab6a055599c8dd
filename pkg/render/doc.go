// Package render turns computed layouts into output artifacts.
//
// The sink subpackage renders a layout to SVG, PNG, or JSON; the nodelink
// subpackage renders the raw hierarchy as a Graphviz node-link diagram for
// debugging. Visual appearance is controlled by styles, plain records that
// can be loaded from TOML preset files or picked from the built-in set.
package render
