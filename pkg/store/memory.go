package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spren9er/cactuz-sub000/pkg/errors"
	"github.com/spren9er/cactuz-sub000/pkg/graph"
	"github.com/spren9er/cactuz-sub000/pkg/observability"
	"github.com/spren9er/cactuz-sub000/pkg/pipeline"
)

// MemoryStore keeps layouts in process memory. Intended for tests and
// single-process runs; everything is lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]StoredLayout
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]StoredLayout)}
}

// Save persists a layout under a fresh uuid.
func (s *MemoryStore) Save(ctx context.Context, opts pipeline.Options, l graph.Layout) (StoredLayout, error) {
	start := time.Now()
	sl := StoredLayout{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Options:   opts,
		Layout:    l,
	}

	s.mu.Lock()
	s.layouts[sl.ID] = sl
	s.mu.Unlock()

	observability.Store().OnStoreSave(ctx, sl.ID, time.Since(start), nil)
	return sl, nil
}

// Load retrieves a layout by id.
func (s *MemoryStore) Load(ctx context.Context, id string) (StoredLayout, error) {
	start := time.Now()
	s.mu.RLock()
	sl, ok := s.layouts[id]
	s.mu.RUnlock()

	if !ok {
		err := errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
		observability.Store().OnStoreLoad(ctx, id, time.Since(start), err)
		return StoredLayout{}, err
	}
	observability.Store().OnStoreLoad(ctx, id, time.Since(start), nil)
	return sl, nil
}

// List returns the most recent layouts, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]StoredLayout, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	all := make([]StoredLayout, 0, len(s.layouts))
	for _, sl := range s.layouts {
		all = append(all, sl)
	}
	s.mu.RUnlock()

	slices.SortFunc(all, func(a, b StoredLayout) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Delete removes a layout.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.layouts, id)
	s.mu.Unlock()
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }
