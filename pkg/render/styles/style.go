// Package styles defines the visual appearance of rendered layouts.
//
// A Style is a flat record of colors and stroke parameters. Circle fill
// varies with tree depth by cycling a palette; everything else is uniform
// across the frame. Styles can be loaded from TOML preset files, so a
// deployment can ship its own look without recompiling.
package styles

import (
	"fmt"
	"image/color"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/spren9er/cactuz-sub000/pkg/errors"
)

// Built-in style names.
const (
	StyleSimple = "simple"
	StyleInk    = "ink"
)

// DefaultStyle is the style used when none is requested.
const DefaultStyle = StyleSimple

// Style is the complete visual configuration for one rendering.
type Style struct {
	Name       string `toml:"name"`
	Background string `toml:"background"`

	// Palette is cycled by tree depth for circle fill.
	Palette     []string `toml:"palette"`
	FillOpacity float64  `toml:"fill_opacity"`
	Stroke      string   `toml:"stroke"`
	StrokeWidth float64  `toml:"stroke_width"`

	EdgeColor   string  `toml:"edge_color"`
	EdgeOpacity float64 `toml:"edge_opacity"`
	EdgeWidth   float64 `toml:"edge_width"`

	LabelColor  string  `toml:"label_color"`
	FontFamily  string  `toml:"font_family"`
	FontSize    float64 `toml:"font_size"`
	LeaderColor string  `toml:"leader_color"`
	LeaderWidth float64 `toml:"leader_width"`
}

var builtins = map[string]Style{
	StyleSimple: {
		Name:        StyleSimple,
		Background:  "#ffffff",
		Palette:     []string{"#cfe8f3", "#a2d4ec", "#73bfe2", "#46abdb", "#1696d2"},
		FillOpacity: 0.85,
		Stroke:      "#1f2d3d",
		StrokeWidth: 1.0,
		EdgeColor:   "#e05252",
		EdgeOpacity: 0.55,
		EdgeWidth:   1.2,
		LabelColor:  "#1f2d3d",
		FontFamily:  "Go, sans-serif",
		FontSize:    12,
		LeaderColor: "#8795a1",
		LeaderWidth: 0.8,
	},
	StyleInk: {
		Name:        StyleInk,
		Background:  "#101418",
		Palette:     []string{"#22303c", "#2d4152", "#395268", "#46647e", "#537694"},
		FillOpacity: 0.9,
		Stroke:      "#c8d3dd",
		StrokeWidth: 0.8,
		EdgeColor:   "#f2a65a",
		EdgeOpacity: 0.6,
		EdgeWidth:   1.0,
		LabelColor:  "#e8eef3",
		FontFamily:  "Go Mono, monospace",
		FontSize:    12,
		LeaderColor: "#6c7a89",
		LeaderWidth: 0.8,
	},
}

// Builtin returns a built-in style by name.
func Builtin(name string) (Style, error) {
	s, ok := builtins[name]
	if !ok {
		return Style{}, errors.New(errors.ErrCodeInvalidStyle,
			"unknown style: %q (must be one of: simple, ink)", name)
	}
	return s, nil
}

// Names returns the built-in style names.
func Names() []string {
	return []string{StyleSimple, StyleInk}
}

// Load reads a style from a TOML preset file. Fields absent from the file
// keep the simple style's values, so presets only need to state what they
// change.
func Load(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read style preset %s", path)
	}
	s := builtins[StyleSimple]
	if err := toml.Unmarshal(data, &s); err != nil {
		return Style{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "parse style preset %s", path)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Resolve returns the style for a name: a built-in when the name matches,
// otherwise the name is treated as a TOML preset path.
func Resolve(name string) (Style, error) {
	if name == "" {
		return builtins[DefaultStyle], nil
	}
	if s, ok := builtins[name]; ok {
		return s, nil
	}
	return Load(name)
}

// FillForDepth returns the palette color for a tree depth, cycling when the
// depth exceeds the palette length.
func (s Style) FillForDepth(depth int) string {
	if len(s.Palette) == 0 {
		return s.Stroke
	}
	if depth < 0 {
		depth = 0
	}
	return s.Palette[depth%len(s.Palette)]
}

// ParseHexColor converts a #rrggbb or #rgb string to a color.RGBA.
func ParseHexColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("invalid length %d", len(s))
	}
	if err != nil {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidStyle, "invalid color %q", s)
	}
	return c, nil
}
