package sink

import (
	"encoding/json"

	"github.com/spren9er/cactuz-sub000/pkg/errors"
	"github.com/spren9er/cactuz-sub000/pkg/graph"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style string
}

// WithJSONStyle records the style name in the JSON output for documentation
// or round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// RenderJSON exports the layout as a pretty-printed JSON document. This is
// the primary data interchange format, enabling:
//
//   - Integration with external visualization tools
//   - Caching computed layouts for fast re-rendering
//   - Round-trip rendering (re-import and render identically)
//
// The document includes node positions, labels with leader lines, bundled
// edge paths, and the options needed to reproduce the layout (seed, style,
// frame size).
func RenderJSON(l graph.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style != "" {
		l.Style = r.style
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal layout")
	}
	return append(data, '\n'), nil
}
