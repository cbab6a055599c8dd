// Package cache provides pluggable caching for cactuz pipeline stages.
//
// The pipeline caches three kinds of values: built trees (keyed by input
// fingerprint), computed layouts (keyed by tree hash plus every layout and
// label option that determines the result), and rendered artifacts (keyed by
// layout hash plus render options). Because keys embed all determining
// inputs, invalidation is implicit: a changed option or node set simply
// produces a different key.
//
// Backends:
//   - MemoryCache: in-process, for single runs and tests
//   - FileCache: on-disk, for CLI usage across invocations
//   - RedisCache: shared, for service deployments
//   - NullCache: disabled caching
package cache

import (
	"context"
	"time"
)

// TTL values per key type.
const (
	// TTLTree is the lifetime of cached tree documents.
	TTLTree = 24 * time.Hour

	// TTLLayout is the lifetime of cached layout computations.
	TTLLayout = 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface for all backends.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts carries every option that determines a layout computation.
type LayoutKeyOpts struct {
	RootID           string
	Width            float64
	Height           float64
	Overlap          float64
	ArcSpan          float64
	SizeGrowthRate   float64
	StartAngle       float64
	Zoom             float64
	LabelLimit       int
	MinRadius        float64
	BundlingStrength float64
	Sweeps           int
	Seed             uint64
}

// ArtifactKeyOpts carries every option that determines a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string
	Style     string
	EdgePoint string
	ShowLinks bool
}

// Keyer builds cache keys for the pipeline stages.
type Keyer interface {
	// TreeKey builds a key for a built tree from its input fingerprint.
	TreeKey(fingerprint string) string

	// LayoutKey builds a key for a layout computation.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey builds a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key builder.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key builder.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// TreeKey builds a key for a built tree.
func (k *DefaultKeyer) TreeKey(fingerprint string) string {
	return hashKey("tree", fingerprint)
}

// LayoutKey builds a key for a layout computation.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey builds a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
