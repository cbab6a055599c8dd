package graph

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func testDocument() Document {
	return Document{
		Nodes: []NodeRecord{
			{ID: "root", Name: "Root"},
			{ID: "a", Parent: "root", Weight: 2.5},
			{ID: "b", Parent: "root"},
		},
		Edges: []EdgeRecord{
			{Source: "a", Target: "b"},
		},
	}
}

func TestDisplayName(t *testing.T) {
	if got := (NodeRecord{ID: "x", Name: "X"}).DisplayName(); got != "X" {
		t.Errorf("DisplayName() = %q, want X", got)
	}
	if got := (NodeRecord{ID: "x"}).DisplayName(); got != "x" {
		t.Errorf("DisplayName() without name = %q, want x", got)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := testDocument()

	data, err := MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument() error: %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("document should be indented")
	}

	back, err := UnmarshalDocument(data)
	if err != nil {
		t.Fatalf("UnmarshalDocument() error: %v", err)
	}
	if len(back.Nodes) != 3 || len(back.Edges) != 1 {
		t.Fatalf("round trip lost records: %d nodes, %d edges", len(back.Nodes), len(back.Edges))
	}
	if back.Nodes[1].Weight != 2.5 {
		t.Errorf("weight = %g, want 2.5", back.Nodes[1].Weight)
	}
}

func TestDocumentFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	doc := testDocument()

	if err := WriteDocumentFile(doc, path); err != nil {
		t.Fatalf("WriteDocumentFile() error: %v", err)
	}
	back, err := ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("ReadDocumentFile() error: %v", err)
	}
	if len(back.Nodes) != len(doc.Nodes) {
		t.Errorf("read %d nodes, want %d", len(back.Nodes), len(doc.Nodes))
	}
}

func TestReadDocumentFileMissing(t *testing.T) {
	if _, err := ReadDocumentFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadDocumentInvalidJSON(t *testing.T) {
	if _, err := ReadDocument(strings.NewReader("{nodes:")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l := Layout{
		FrameWidth:  800,
		FrameHeight: 600,
		Seed:        42,
		Style:       "simple",
		Nodes: []PlacedNode{
			{ID: "root", X: 400, Y: 300, Radius: 100, Leaf: false},
			{ID: "a", X: 200, Y: 200, Radius: 40, Depth: 1, Leaf: true},
		},
		Labels: []PlacedLabel{
			{Key: "root", Text: "Root", X: 380, Y: 290, Width: 40, Height: 14, Inside: true, Link: -1},
			{Key: "a", Text: "a", X: 120, Y: 150, Width: 10, Height: 14, Link: 0},
		},
		Links: []LeaderLine{
			{X1: 170, Y1: 180, X2: 130, Y2: 160},
		},
		Paths: []EdgePath{
			{Source: "a", Target: "root", Points: []Point{{X: 200, Y: 200}, {X: 400, Y: 300}}},
		},
	}

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout() error: %v", err)
	}

	back, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout() error: %v", err)
	}
	if back.FrameWidth != 800 || back.Seed != 42 {
		t.Errorf("frame = %+v, want width 800 seed 42", back)
	}
	if len(back.Nodes) != 2 || len(back.Labels) != 2 || len(back.Links) != 1 || len(back.Paths) != 1 {
		t.Fatal("round trip lost layout parts")
	}
	if back.Labels[0].Link != -1 {
		t.Errorf("inside label link = %d, want -1", back.Labels[0].Link)
	}
	if len(back.Paths[0].Points) != 2 {
		t.Errorf("path has %d points, want 2", len(back.Paths[0].Points))
	}
}

func TestWriteReadLayout(t *testing.T) {
	l := Layout{FrameWidth: 100, FrameHeight: 50, Nodes: []PlacedNode{{ID: "n"}}}

	var buf bytes.Buffer
	if err := WriteLayout(l, &buf); err != nil {
		t.Fatalf("WriteLayout() error: %v", err)
	}
	back, err := ReadLayout(&buf)
	if err != nil {
		t.Fatalf("ReadLayout() error: %v", err)
	}
	if back.FrameWidth != 100 || len(back.Nodes) != 1 {
		t.Errorf("round trip = %+v", back)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	doc := testDocument()
	a, err := MarshalDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	b, err := MarshalDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("marshaling the same document twice should be byte-identical")
	}
}
