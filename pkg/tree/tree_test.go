package tree

import (
	"testing"

	"github.com/spren9er/cactuz-sub000/pkg/graph"
)

// testRecords builds the standard fixture:
//
//	root
//	├── a
//	│   ├── a1
//	│   └── a2
//	└── b
//	    └── b1
func testRecords() []graph.NodeRecord {
	return []graph.NodeRecord{
		{ID: "root", Name: "Root"},
		{ID: "a", Parent: "root"},
		{ID: "a1", Parent: "a"},
		{ID: "a2", Parent: "a"},
		{ID: "b", Parent: "root"},
		{ID: "b1", Parent: "b"},
	}
}

func mustLookup(t *testing.T, tr *Tree, id string) int {
	t.Helper()
	i, ok := tr.Lookup(id)
	if !ok {
		t.Fatalf("node %q not in tree", id)
	}
	return i
}

func TestBuildBasic(t *testing.T) {
	tr := Build(testRecords())

	if tr.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", tr.Len())
	}
	if tr.Node(tr.Root()).ID != "root" {
		t.Errorf("root id = %q, want root", tr.Node(tr.Root()).ID)
	}
	if tr.Node(tr.Root()).Name != "Root" {
		t.Errorf("root name = %q, want Root", tr.Node(tr.Root()).Name)
	}

	a := mustLookup(t, tr, "a")
	if len(tr.Node(a).Children) != 2 {
		t.Errorf("a has %d children, want 2", len(tr.Node(a).Children))
	}
	a1 := mustLookup(t, tr, "a1")
	if !tr.Node(a1).IsLeaf() {
		t.Error("a1 should be a leaf")
	}
}

func TestBuildWeights(t *testing.T) {
	tr := Build(testRecords())

	tests := []struct {
		id   string
		want float64
	}{
		{"a1", 1}, // leaf
		{"a", 2},  // a1 + a2
		{"b", 1},  // single leaf below
		{"root", 3},
	}
	for _, tt := range tests {
		i := mustLookup(t, tr, tt.id)
		if got := tr.Weight(i); got != tt.want {
			t.Errorf("Weight(%s) = %g, want %g", tt.id, got, tt.want)
		}
	}
}

func TestBuildExplicitWeightWins(t *testing.T) {
	records := testRecords()
	records[1].Weight = 10 // a

	tr := Build(records)
	a := mustLookup(t, tr, "a")
	if got := tr.Weight(a); got != 10 {
		t.Errorf("Weight(a) = %g, want explicit 10", got)
	}
	// Parent sums use the explicit value, not the derived one.
	if got := tr.Weight(tr.Root()); got != 11 {
		t.Errorf("Weight(root) = %g, want 11", got)
	}
}

func TestInvalidateWeights(t *testing.T) {
	tr := Build(testRecords())
	if got := tr.Weight(tr.Root()); got != 3 {
		t.Fatalf("Weight(root) = %g, want 3", got)
	}
	tr.InvalidateWeights()
	if got := tr.Weight(tr.Root()); got != 3 {
		t.Errorf("Weight(root) after invalidate = %g, want 3", got)
	}
}

func TestBuildDropsDuplicatesAndOrphans(t *testing.T) {
	records := []graph.NodeRecord{
		{ID: "root"},
		{ID: "a", Parent: "root"},
		{ID: "a", Parent: "root", Name: "dup"}, // duplicate id, dropped
		{ID: "x", Parent: "ghost"},             // orphan, dropped
		{ID: "x1", Parent: "x"},                // reachable only via orphan
		{ID: "", Parent: "root"},               // empty id, dropped
		{ID: "self", Parent: "self"},           // self-parent, unreachable
	}

	tr := Build(records)
	if tr.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tr.Len())
	}
	if _, ok := tr.Lookup("x1"); ok {
		t.Error("x1 should have been dropped with its orphaned parent")
	}
	a := mustLookup(t, tr, "a")
	if tr.Node(a).Name == "dup" {
		t.Error("duplicate record overwrote the first occurrence")
	}
}

func TestBuildForestKeepsFirstRoot(t *testing.T) {
	records := []graph.NodeRecord{
		{ID: "r1"},
		{ID: "r1a", Parent: "r1"},
		{ID: "r2"},
		{ID: "r2a", Parent: "r2"},
	}

	tr := Build(records)
	if tr.Node(tr.Root()).ID != "r1" {
		t.Errorf("root = %q, want r1", tr.Node(tr.Root()).ID)
	}
	if tr.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (second tree dropped)", tr.Len())
	}

	tr2 := BuildWithRoot(records, "r2")
	if tr2.Node(tr2.Root()).ID != "r2" {
		t.Errorf("explicit root = %q, want r2", tr2.Node(tr2.Root()).ID)
	}
	if _, ok := tr2.Lookup("r1"); ok {
		t.Error("r1 should not be reachable from r2")
	}
}

func TestBuildEmptyInput(t *testing.T) {
	tr := Build(nil)
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
	if tr.Node(tr.Root()).ID != EmptyRootID {
		t.Errorf("root id = %q, want %q", tr.Node(tr.Root()).ID, EmptyRootID)
	}
	if got := tr.Weight(tr.Root()); got != 1 {
		t.Errorf("synthetic root weight = %g, want 1", got)
	}
}

func TestBuildMissingRootID(t *testing.T) {
	tr := BuildWithRoot(testRecords(), "ghost")
	if tr.Node(tr.Root()).ID != EmptyRootID {
		t.Errorf("root id = %q, want synthetic %q", tr.Node(tr.Root()).ID, EmptyRootID)
	}
}

func TestRoots(t *testing.T) {
	records := []graph.NodeRecord{
		{ID: "r1"},
		{ID: "a", Parent: "r1"},
		{ID: "r2"},
		{ID: "r2"}, // duplicate, counted once
	}
	got := Roots(records)
	if len(got) != 2 || got[0] != "r1" || got[1] != "r2" {
		t.Errorf("Roots() = %v, want [r1 r2]", got)
	}
}

func TestPathToRootAndDepth(t *testing.T) {
	tr := Build(testRecords())
	a1 := mustLookup(t, tr, "a1")

	path := tr.PathToRoot(a1)
	if len(path) != 3 {
		t.Fatalf("path length = %d, want 3", len(path))
	}
	if path[0] != a1 || path[len(path)-1] != tr.Root() {
		t.Errorf("path = %v, want a1 first and root last", path)
	}

	if got := tr.Depth(a1); got != 2 {
		t.Errorf("Depth(a1) = %d, want 2", got)
	}
	if got := tr.Depth(tr.Root()); got != 0 {
		t.Errorf("Depth(root) = %d, want 0", got)
	}
}

func TestLCA(t *testing.T) {
	tr := Build(testRecords())
	a1 := mustLookup(t, tr, "a1")
	a2 := mustLookup(t, tr, "a2")
	b1 := mustLookup(t, tr, "b1")
	a := mustLookup(t, tr, "a")

	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"siblings", a1, a2, a},
		{"cross subtree", a1, b1, tr.Root()},
		{"ancestor of", a, a1, a},
		{"self", a1, a1, a1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.LCA(tt.x, tt.y); got != tt.want {
				t.Errorf("LCA = %d (%s), want %d (%s)",
					got, tr.Node(got).ID, tt.want, tr.Node(tt.want).ID)
			}
		})
	}
}

func TestIsAncestor(t *testing.T) {
	tr := Build(testRecords())
	a := mustLookup(t, tr, "a")
	a1 := mustLookup(t, tr, "a1")
	b := mustLookup(t, tr, "b")

	if !tr.IsAncestor(tr.Root(), a1) {
		t.Error("root should be ancestor of a1")
	}
	if !tr.IsAncestor(a, a) {
		t.Error("a node is its own ancestor")
	}
	if tr.IsAncestor(b, a1) {
		t.Error("b is not an ancestor of a1")
	}
}

func TestFingerprint(t *testing.T) {
	r1 := testRecords()
	r2 := testRecords()
	if Fingerprint(r1) != Fingerprint(r2) {
		t.Error("identical inputs should share a fingerprint")
	}

	r2[len(r2)-1].Name = "renamed"
	if Fingerprint(r1) == Fingerprint(r2) {
		t.Error("last record rename should change the fingerprint")
	}

	if Fingerprint(nil) != Fingerprint([]graph.NodeRecord{}) {
		t.Error("nil and empty inputs should share a fingerprint")
	}
}

func TestBuilderMemoizes(t *testing.T) {
	var b Builder
	records := testRecords()

	t1 := b.Build(records)
	t2 := b.Build(records)
	if t1 != t2 {
		t.Error("same input should return the cached tree")
	}

	b.Reset()
	t3 := b.Build(records)
	if t1 == t3 {
		t.Error("Reset should drop the cached tree")
	}
}
