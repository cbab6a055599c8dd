// Package store persists computed layouts for later retrieval.
//
// The render service saves each layout it computes and hands the caller an
// id, so clients can re-fetch or share a result without re-running the
// pipeline. Two backends exist: MemoryStore for tests and single-process
// runs, and MongoStore for service deployments.
package store

import (
	"context"
	"time"

	"github.com/spren9er/cactuz-sub000/pkg/graph"
	"github.com/spren9er/cactuz-sub000/pkg/pipeline"
)

// StoredLayout is a persisted layout with its identity and provenance.
type StoredLayout struct {
	ID        string           `json:"id" bson:"_id"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	Options   pipeline.Options `json:"options" bson:"options"`
	Layout    graph.Layout     `json:"layout" bson:"layout"`
}

// Store is the persistence interface for layouts.
type Store interface {
	// Save persists a layout and returns it with a fresh id.
	Save(ctx context.Context, opts pipeline.Options, l graph.Layout) (StoredLayout, error)

	// Load retrieves a layout by id. A missing id yields a
	// LAYOUT_NOT_FOUND error.
	Load(ctx context.Context, id string) (StoredLayout, error)

	// List returns the most recent layouts, newest first.
	List(ctx context.Context, limit int) ([]StoredLayout, error)

	// Delete removes a layout. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// DefaultListLimit bounds List when the caller passes no limit.
const DefaultListLimit = 50
