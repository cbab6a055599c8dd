package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/spren9er/cactuz-sub000/pkg/cache"
	"github.com/spren9er/cactuz-sub000/pkg/graph"
	"github.com/spren9er/cactuz-sub000/pkg/pipeline"
	"github.com/spren9er/cactuz-sub000/pkg/tree"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string           // output file path (or base path for multiple formats)
	noCache  bool             // disable the file cache entirely
	pipeline pipeline.Options // everything the pipeline itself understands
}

// newRenderCmd creates the render command for generating visualizations.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a hierarchy document to SVG, PNG, JSON, or DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.pipeline.Formats = parseFormats(formatsStr)
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	p := &opts.pipeline
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, dot (comma-separated)")
	cmd.Flags().Float64Var(&p.Width, "width", pipeline.DefaultWidth, "frame width")
	cmd.Flags().Float64Var(&p.Height, "height", pipeline.DefaultHeight, "frame height")
	cmd.Flags().Float64Var(&p.Overlap, "overlap", 0, "child overlap: 0 touching, 1 concentric, negative adds gap")
	cmd.Flags().Float64Var(&p.ArcSpan, "arc-span", 0, "child fan arc in radians (default π)")
	cmd.Flags().Float64Var(&p.SizeGrowthRate, "growth-rate", 0, "radius growth exponent in (0, 1]")
	cmd.Flags().Float64Var(&p.StartAngle, "start-angle", 0, "root fan direction in radians")
	cmd.Flags().Float64Var(&p.Zoom, "zoom", 0, "zoom factor applied after fitting")
	cmd.Flags().StringVar(&p.RootID, "root", "", "layout the subtree under this node id")
	cmd.Flags().Uint64Var(&p.Seed, "seed", pipeline.DefaultSeed, "random seed for label placement")
	cmd.Flags().BoolVar(&p.NoLabels, "no-labels", false, "skip label placement")
	cmd.Flags().IntVar(&p.LabelLimit, "label-limit", 0, "maximum number of labels (default 24)")
	cmd.Flags().Float64Var(&p.MinRadius, "min-radius", 0, "smallest circle radius that gets a label")
	cmd.Flags().IntVar(&p.Sweeps, "sweeps", 0, "annealing sweeps for label placement (default 80)")
	cmd.Flags().Float64Var(&p.BundlingStrength, "bundling", 0, "edge bundling strength in [0, 1]")
	cmd.Flags().StringVar(&p.EdgePoint, "edge-point", "", "edge attachment: center (default) or perimeter")
	cmd.Flags().StringVar(&p.Style, "style", "", "visual style: simple (default), ink, or a TOML preset path")
	cmd.Flags().BoolVar(&p.ShowLinks, "links", false, "draw bundled cross-link curves")
	cmd.Flags().BoolVar(&p.Refresh, "refresh", false, "bypass the layout cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching entirely")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// runRender loads the document, resolves the root for forest inputs, runs
// the pipeline, and writes all requested artifacts.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	doc, err := graph.ReadDocumentFile(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded document: %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))

	if opts.pipeline.RootID == "" {
		rootID, err := resolveForestRoot(doc)
		if err != nil {
			return err
		}
		opts.pipeline.RootID = rootID
	}

	runner, err := newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, doc, opts.pipeline)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	printStats(result.Stats.NodeCount, result.Stats.EdgeCount,
		result.Stats.LabelCount, result.CacheInfo.LayoutHit)

	return writeArtifacts(input, opts.output, result.Artifacts)
}

// resolveForestRoot picks a root when the document is a forest. On a
// terminal it opens an interactive picker; otherwise the first root wins
// with a warning.
func resolveForestRoot(doc graph.Document) (string, error) {
	roots := tree.Roots(doc.Nodes)
	if len(roots) <= 1 {
		return "", nil
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		return pickRoot(doc, roots)
	}

	printWarning("Document is a forest with %d roots; using %q", len(roots), roots[0])
	printNextStep("Pick another root", "cactuz render --root <id> "+StyleDim.Render("..."))
	return roots[0], nil
}

// newRunner builds a pipeline runner backed by the user's file cache, or a
// cacheless runner when disabled.
func newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	if noCache {
		return pipeline.NewRunner(nil, nil, loggerFromContext(ctx)), nil
	}

	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return pipeline.NewRunner(fc, nil, loggerFromContext(ctx)), nil
}

// writeArtifacts writes each rendered format to its own file. With a single
// format the output path is used verbatim; with several, the format becomes
// the extension on the base path.
func writeArtifacts(input, output string, artifacts map[string][]byte) error {
	base := basePath(output, input)

	for _, format := range sortedFormats(artifacts) {
		path := base + "." + format
		if output != "" && len(artifacts) == 1 {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output has a
// known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// sortedFormats returns artifact formats in a stable order.
func sortedFormats(artifacts map[string][]byte) []string {
	order := []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatJSON, pipeline.FormatDOT}
	var out []string
	for _, f := range order {
		if _, ok := artifacts[f]; ok {
			out = append(out, f)
		}
	}
	return out
}
