package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get() = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != "v" {
		t.Errorf("Get() = %q, want v", data)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("missing key should be a miss")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted key should be a miss")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should be a miss")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expiry read, want 0", c.Len())
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "layout:abc", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || !hit {
		t.Fatalf("Get() = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q, want payload", data)
	}

	// A second cache over the same directory sees the entry.
	c2, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c2.Get(ctx, "layout:abc"); !hit {
		t.Error("entry should survive across cache instances")
	}

	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("deleted entry should be a miss")
	}
	// Deleting again is not an error.
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("repeated Delete() error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestNullCacheNeverHits(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("null cache should never hit")
	}
}

func TestDefaultKeyerDistinctness(t *testing.T) {
	k := NewDefaultKeyer()
	base := LayoutKeyOpts{Width: 800, Height: 600, Seed: 42}

	mutations := []struct {
		name string
		mut  func(o LayoutKeyOpts) LayoutKeyOpts
	}{
		{"root id", func(o LayoutKeyOpts) LayoutKeyOpts { o.RootID = "a"; return o }},
		{"width", func(o LayoutKeyOpts) LayoutKeyOpts { o.Width = 801; return o }},
		{"overlap", func(o LayoutKeyOpts) LayoutKeyOpts { o.Overlap = 0.2; return o }},
		{"zoom", func(o LayoutKeyOpts) LayoutKeyOpts { o.Zoom = 2; return o }},
		{"label limit", func(o LayoutKeyOpts) LayoutKeyOpts { o.LabelLimit = 10; return o }},
		{"bundling", func(o LayoutKeyOpts) LayoutKeyOpts { o.BundlingStrength = 0.5; return o }},
		{"sweeps", func(o LayoutKeyOpts) LayoutKeyOpts { o.Sweeps = 7; return o }},
		{"seed", func(o LayoutKeyOpts) LayoutKeyOpts { o.Seed = 7; return o }},
	}

	baseKey := k.LayoutKey("tree1", base)
	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			if k.LayoutKey("tree1", m.mut(base)) == baseKey {
				t.Errorf("changing %s did not change the layout key", m.name)
			}
		})
	}

	if k.LayoutKey("tree2", base) == baseKey {
		t.Error("tree hash should change the layout key")
	}
	if k.LayoutKey("tree1", base) != baseKey {
		t.Error("identical inputs should produce identical keys")
	}
}

func TestDefaultKeyerArtifactKeys(t *testing.T) {
	k := NewDefaultKeyer()
	base := ArtifactKeyOpts{Format: "svg", Style: "simple", EdgePoint: "center"}

	baseKey := k.ArtifactKey("layout1", base)

	png := base
	png.Format = "png"
	if k.ArtifactKey("layout1", png) == baseKey {
		t.Error("format should change the artifact key")
	}

	perim := base
	perim.EdgePoint = "perimeter"
	if k.ArtifactKey("layout1", perim) == baseKey {
		t.Error("edge point should change the artifact key")
	}

	links := base
	links.ShowLinks = true
	if k.ArtifactKey("layout1", links) == baseKey {
		t.Error("show links should change the artifact key")
	}
}

func TestScopedKeyerPrefixes(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:acme:")

	key := scoped.TreeKey("fp")
	want := "tenant:acme:" + inner.TreeKey("fp")
	if key != want {
		t.Errorf("TreeKey = %q, want %q", key, want)
	}
}

func TestHashStable(t *testing.T) {
	if Hash([]byte("x")) != Hash([]byte("x")) {
		t.Error("hash should be deterministic")
	}
	if Hash([]byte("x")) == Hash([]byte("y")) {
		t.Error("different inputs should hash differently")
	}
	if len(Hash([]byte("x"))) != 64 {
		t.Errorf("hash length = %d, want 64", len(Hash([]byte("x"))))
	}
}
