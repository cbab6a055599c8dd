package nodelink

import (
	"strings"
	"testing"

	"github.com/spren9er/cactuz-sub000/pkg/graph"
)

func testDoc() graph.Document {
	return graph.Document{
		Nodes: []graph.NodeRecord{
			{ID: "root", Name: "Root"},
			{ID: "a", Name: "Alpha", Parent: "root", Weight: 3},
			{ID: "b", Parent: "root"},
		},
		Edges: []graph.EdgeRecord{
			{Source: "a", Target: "b"},
		},
	}
}

func TestToDOTStructure(t *testing.T) {
	dot := ToDOT(testDoc(), Options{})

	for _, want := range []string{
		"digraph G {",
		`"root" -> "a";`,
		`"root" -> "b";`,
		`"a" -> "b" [style=dashed`,
		`"a" [label="Alpha"];`,
		`"b" [label="b"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailedIncludesWeight(t *testing.T) {
	dot := ToDOT(testDoc(), Options{Detailed: true})
	if !strings.Contains(dot, "weight: 3") {
		t.Errorf("detailed DOT should include explicit weight:\n%s", dot)
	}
	if strings.Contains(dot, `"b" [label="b\nweight`) {
		t.Error("nodes without explicit weight should not show one")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="134pt" height="188pt" viewBox="0.00 0.00 134.00 188.00" xmlns="http://www.w3.org/2000/svg">`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 134.00 188.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="134" height="188"`) {
		t.Errorf("pixel dimensions not set: %s", out)
	}

	plain := []byte("<svg>")
	if got := normalizeViewBox(plain); string(got) != "<svg>" {
		t.Errorf("svg without viewBox should pass through, got %s", got)
	}
}
