package tree

// EmptyRootID is the id of the synthetic root created for empty input.
const EmptyRootID = "empty"

// NoParent marks the root's parent index.
const NoParent = -1

// Node is one arena entry. Children hold arena indices in input order.
type Node struct {
	ID       string
	Name     string
	Explicit float64 // explicit subtree weight; 0 means derived
	Parent   int     // arena index of the parent, NoParent for the root
	Children []int
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree is an arena-backed hierarchy with a single root at index 0.
// Tree is not safe for concurrent use without external synchronization:
// Weight mutates the internal memo table.
type Tree struct {
	nodes       []Node
	index       map[string]int
	weights     []float64 // memoized subtree weights, -1 = not computed
	fingerprint string
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the arena index of the root node (always 0).
func (t *Tree) Root() int { return 0 }

// Node returns the node at arena index i.
// The returned pointer refers to the actual arena entry.
func (t *Tree) Node(i int) *Node { return &t.nodes[i] }

// Lookup returns the arena index for an id and whether it exists.
func (t *Tree) Lookup(id string) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}

// Fingerprint returns the structural hash of the input this tree was built
// from. Two inputs with the same length and the same first/last id+name
// produce the same fingerprint.
func (t *Tree) Fingerprint() string { return t.fingerprint }

// Weight returns the subtree weight of node i, computing and memoizing it
// on first access. The recursion descends into children only for nodes
// without an explicit weight.
func (t *Tree) Weight(i int) float64 {
	if w := t.weights[i]; w >= 0 {
		return w
	}
	n := &t.nodes[i]
	var w float64
	switch {
	case n.Explicit > 0:
		w = n.Explicit
	case len(n.Children) == 0:
		w = 1
	default:
		for _, c := range n.Children {
			w += t.Weight(c)
		}
	}
	t.weights[i] = w
	return w
}

// InvalidateWeights clears the weight memo table.
// Call this at the start of every layout pass.
func (t *Tree) InvalidateWeights() {
	for i := range t.weights {
		t.weights[i] = -1
	}
}

// PathToRoot returns the arena indices from node i up to and including the
// root, in node-to-root order.
func (t *Tree) PathToRoot(i int) []int {
	var path []int
	for j := i; j != NoParent; j = t.nodes[j].Parent {
		path = append(path, j)
	}
	return path
}

// LCA returns the lowest common ancestor of a and b. The paths from both
// nodes to the root are compared from their root ends inward; the last
// matching index is the LCA. When one node is an ancestor of the other,
// that node is returned.
func (t *Tree) LCA(a, b int) int {
	pa := t.PathToRoot(a)
	pb := t.PathToRoot(b)

	lca := pa[len(pa)-1] // root
	ia, ib := len(pa)-1, len(pb)-1
	for ia >= 0 && ib >= 0 && pa[ia] == pb[ib] {
		lca = pa[ia]
		ia--
		ib--
	}
	return lca
}

// IsAncestor reports whether anc is an ancestor of n (or n itself).
func (t *Tree) IsAncestor(anc, n int) bool {
	for j := n; j != NoParent; j = t.nodes[j].Parent {
		if j == anc {
			return true
		}
	}
	return false
}

// Depth returns the number of parent hops from node i to the root.
func (t *Tree) Depth(i int) int {
	d := 0
	for j := t.nodes[i].Parent; j != NoParent; j = t.nodes[j].Parent {
		d++
	}
	return d
}
