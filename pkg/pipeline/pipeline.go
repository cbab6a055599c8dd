// Package pipeline provides the core layout pipeline for cactuz.
//
// This package implements the complete build → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: turn the flat input document into a rooted hierarchy
//  2. Layout: position circles, place labels, route bundled cross-links
//  3. Render: generate output in various formats (SVG, PNG, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline,
// and each stage result is cached under a key derived from everything that
// determines it.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spren9er/cactuz-sub000/pkg/cache"
	"github.com/spren9er/cactuz-sub000/pkg/errors"
	"github.com/spren9er/cactuz-sub000/pkg/graph"
	"github.com/spren9er/cactuz-sub000/pkg/label"
	"github.com/spren9er/cactuz-sub000/pkg/layout"
	"github.com/spren9er/cactuz-sub000/pkg/render/styles"
	"github.com/spren9er/cactuz-sub000/pkg/route"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultBundlingStrength pulls bundled edges most of the way toward
	// their tree path while keeping a hint of the straight line.
	DefaultBundlingStrength = 0.85

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)
)

// DefaultStyle is the default visual style.
const DefaultStyle = styles.DefaultStyle

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width          float64 `json:"width,omitempty"`
	Height         float64 `json:"height,omitempty"`
	Overlap        float64 `json:"overlap,omitempty"`
	ArcSpan        float64 `json:"arc_span,omitempty"`
	SizeGrowthRate float64 `json:"size_growth_rate,omitempty"`
	StartAngle     float64 `json:"start_angle,omitempty"`
	Zoom           float64 `json:"zoom,omitempty"`
	RootID         string  `json:"root_id,omitempty"` // layout a subtree, or pick a forest root
	Seed           uint64  `json:"seed,omitempty"`

	// Label options
	NoLabels   bool    `json:"no_labels,omitempty"`
	LabelLimit int     `json:"label_limit,omitempty"`
	MinRadius  float64 `json:"min_radius,omitempty"`
	Sweeps     int     `json:"sweeps,omitempty"`

	// Edge options
	BundlingStrength float64 `json:"bundling_strength,omitempty"`
	EdgePoint        string  `json:"edge_point,omitempty"` // "center" or "perimeter"

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"`
	ShowLinks bool     `json:"show_links,omitempty"`

	// Refresh bypasses the tree and layout caches.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout contains the layout data (circles, labels, edge paths).
	Layout graph.Layout

	// TreeHash is the content hash of the built hierarchy.
	TreeHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LabelCount int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEdgePoint checks that an edge point mode is valid.
func ValidateEdgePoint(mode string) error {
	if mode != route.EdgePointCenter && mode != route.EdgePointPerimeter {
		return errors.New(errors.ErrCodeInvalidOptions,
			"invalid edge_point: %q (must be center or perimeter)", mode)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.ArcSpan == 0 {
		o.ArcSpan = layout.DefaultArcSpan
	}
	if o.SizeGrowthRate == 0 {
		o.SizeGrowthRate = layout.DefaultSizeGrowthRate
	}
	if o.Zoom == 0 {
		o.Zoom = layout.DefaultZoom
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.LabelLimit == 0 {
		o.LabelLimit = label.DefaultLabelLimit
	}
	if o.MinRadius == 0 {
		o.MinRadius = label.DefaultMinRadius
	}
	if o.Sweeps == 0 {
		o.Sweeps = label.DefaultSweeps
	}
	if o.BundlingStrength == 0 {
		o.BundlingStrength = DefaultBundlingStrength
	}
	if o.EdgePoint == "" {
		o.EdgePoint = route.EdgePointCenter
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()

	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "frame size must be positive")
	}
	if o.Overlap > 1 {
		return errors.New(errors.ErrCodeInvalidOptions,
			"overlap must be at most 1 (concentric), got %g", o.Overlap)
	}
	if o.ArcSpan <= 0 || o.ArcSpan > 2*math.Pi {
		return errors.New(errors.ErrCodeInvalidOptions,
			"arc_span must be in (0, 2π], got %g", o.ArcSpan)
	}
	if o.SizeGrowthRate <= 0 || o.SizeGrowthRate > 1 {
		return errors.New(errors.ErrCodeInvalidOptions,
			"size_growth_rate must be in (0, 1], got %g", o.SizeGrowthRate)
	}
	if o.Zoom <= 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "zoom must be positive, got %g", o.Zoom)
	}
	if o.BundlingStrength < 0 || o.BundlingStrength > 1 {
		return errors.New(errors.ErrCodeInvalidOptions,
			"bundling_strength must be in [0, 1], got %g", o.BundlingStrength)
	}
	return ValidateEdgePoint(o.EdgePoint)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	_, err := styles.Resolve(o.Style)
	return err
}

// layoutOptions translates pipeline options to the layout engine's options.
func (o *Options) layoutOptions() layout.Options {
	return layout.Options{
		Overlap:        o.Overlap,
		ArcSpan:        o.ArcSpan,
		SizeGrowthRate: o.SizeGrowthRate,
		StartAngle:     o.StartAngle,
		Zoom:           o.Zoom,
	}
}

// labelOptions translates pipeline options to the label engine's options.
func (o *Options) labelOptions() label.Options {
	return label.Options{
		LabelLimit: o.LabelLimit,
		MinRadius:  o.MinRadius,
		Sweeps:     o.Sweeps,
		Seed:       o.Seed,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		RootID:           o.RootID,
		Width:            o.Width,
		Height:           o.Height,
		Overlap:          o.Overlap,
		ArcSpan:          o.ArcSpan,
		SizeGrowthRate:   o.SizeGrowthRate,
		StartAngle:       o.StartAngle,
		Zoom:             o.Zoom,
		LabelLimit:       o.effectiveLabelLimit(),
		MinRadius:        o.MinRadius,
		BundlingStrength: o.BundlingStrength,
		Sweeps:           o.Sweeps,
		Seed:             o.Seed,
	}
}

func (o *Options) effectiveLabelLimit() int {
	if o.NoLabels {
		return 0
	}
	return o.LabelLimit
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Style:     o.Style,
		EdgePoint: o.EdgePoint,
		ShowLinks: o.ShowLinks,
	}
}
