package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when one shared backend serves several independent engines or
// tenants.
//
// Example usage:
//
//	// Per-project keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:demo:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// TreeKey generates a prefixed key for built trees.
func (k *ScopedKeyer) TreeKey(fingerprint string) string {
	return k.prefix + k.inner.TreeKey(fingerprint)
}

// LayoutKey generates a prefixed key for layout computations.
func (k *ScopedKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(treeHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
