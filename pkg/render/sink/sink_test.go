package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/spren9er/cactuz-sub000/pkg/graph"
	"github.com/spren9er/cactuz-sub000/pkg/render/styles"
)

func testLayout() graph.Layout {
	return graph.Layout{
		FrameWidth:  200,
		FrameHeight: 150,
		Seed:        42,
		Nodes: []graph.PlacedNode{
			{ID: "root", Name: "root", X: 100, Y: 75, Radius: 60, Depth: 0},
			{ID: "a", Name: "a", X: 70, Y: 75, Radius: 20, Depth: 1, Leaf: true},
			{ID: "b", Name: "b", X: 130, Y: 75, Radius: 20, Depth: 1, Leaf: true},
		},
		Labels: []graph.PlacedLabel{
			{Key: "root", Text: "root", X: 88, Y: 69, Width: 24, Height: 12, Inside: true, Link: -1},
			{Key: "a", Text: "a", X: 10, Y: 10, Width: 10, Height: 12, Link: 0},
		},
		Links: []graph.LeaderLine{
			{X1: 60, Y1: 70, X2: 20, Y2: 22},
		},
		Paths: []graph.EdgePath{
			{Source: "a", Target: "b", Points: []graph.Point{
				{X: 70, Y: 75}, {X: 100, Y: 75}, {X: 130, Y: 75},
			}},
		},
	}
}

func TestRenderSVGBasics(t *testing.T) {
	svg := string(RenderSVG(testLayout()))

	for _, want := range []string{
		`viewBox="0 0 200.0 150.0"`,
		`data-id="root"`,
		`data-leaf="true"`,
		`<text`,
		`<line`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	// Links not requested, so no path elements.
	if strings.Contains(svg, `class="link"`) {
		t.Error("SVG should not contain link paths without WithLinks")
	}
	if strings.Contains(svg, "<script") {
		t.Error("SVG should not contain scripts without WithInteraction")
	}
}

func TestRenderSVGWithLinksAndInteraction(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithLinks(), WithInteraction()))
	if !strings.Contains(svg, `class="link"`) {
		t.Error("SVG missing cross-link path")
	}
	if !strings.Contains(svg, `data-source="a"`) {
		t.Error("link path missing source attribute")
	}
	if !strings.Contains(svg, "<script") {
		t.Error("SVG missing interaction script")
	}
}

func TestRenderSVGDepthOrder(t *testing.T) {
	svg := string(RenderSVG(testLayout()))
	root := strings.Index(svg, `data-id="root"`)
	child := strings.Index(svg, `data-id="a"`)
	if root == -1 || child == -1 || root > child {
		t.Error("parent circle should be emitted before its children")
	}
}

func TestCurveData(t *testing.T) {
	tests := []struct {
		name string
		pts  []graph.Point
		want []string
	}{
		{
			"two points is a line",
			[]graph.Point{{X: 0, Y: 0}, {X: 10, Y: 10}},
			[]string{"M 0.00 0.00", "L 10.00 10.00"},
		},
		{
			"three points bend through the middle",
			[]graph.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 10}},
			[]string{"M 0.00 0.00", "Q 10.00 0.00 15.00 5.00", "L 20.00 10.00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := curveData(tt.pts)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("curveData() = %q, missing %q", got, want)
				}
			}
		})
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testLayout(), WithPNGLinks())
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	b := img.Bounds()
	// Default scale is 2x.
	if b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("PNG dimensions = %dx%d, want 400x300", b.Dx(), b.Dy())
	}
}

func TestRenderPNGScale(t *testing.T) {
	data, err := RenderPNG(testLayout(), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("PNG dimensions = %dx%d, want 200x150", b.Dx(), b.Dy())
	}
}

func TestRenderPNGEmptyFrame(t *testing.T) {
	if _, err := RenderPNG(graph.Layout{}); err == nil {
		t.Error("rasterizing a zero-size frame should fail")
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	data, err := RenderJSON(testLayout(), WithJSONStyle(styles.StyleInk))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var got graph.Layout
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.Style != styles.StyleInk {
		t.Errorf("style = %q, want %q", got.Style, styles.StyleInk)
	}
	if len(got.Nodes) != 3 || len(got.Paths) != 1 {
		t.Errorf("round trip lost data: %d nodes, %d paths", len(got.Nodes), len(got.Paths))
	}
	if got.Seed != 42 {
		t.Errorf("seed = %d, want 42", got.Seed)
	}
}
