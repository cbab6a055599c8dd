package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spren9er/cactuz-sub000/pkg/errors"
	"github.com/spren9er/cactuz-sub000/pkg/graph"
	"github.com/spren9er/cactuz-sub000/pkg/observability"
	"github.com/spren9er/cactuz-sub000/pkg/pipeline"
)

// Default Mongo locations.
const (
	DefaultDatabase   = "cactuz"
	DefaultCollection = "layouts"
)

// MongoStore persists layouts in a MongoDB collection, one document per
// stored layout with the uuid as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping before returning.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(DefaultDatabase).Collection(DefaultCollection),
	}, nil
}

// NewMongoStoreFromCollection wraps an existing collection, letting callers
// control database and collection names or share a client.
func NewMongoStoreFromCollection(client *mongo.Client, coll *mongo.Collection) *MongoStore {
	return &MongoStore{client: client, coll: coll}
}

// Save persists a layout under a fresh uuid.
func (s *MongoStore) Save(ctx context.Context, opts pipeline.Options, l graph.Layout) (StoredLayout, error) {
	start := time.Now()
	sl := StoredLayout{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Options:   opts,
		Layout:    l,
	}

	_, err := s.coll.InsertOne(ctx, sl)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeStore, err, "save layout")
	}
	observability.Store().OnStoreSave(ctx, sl.ID, time.Since(start), err)
	if err != nil {
		return StoredLayout{}, err
	}
	return sl, nil
}

// Load retrieves a layout by id.
func (s *MongoStore) Load(ctx context.Context, id string) (StoredLayout, error) {
	start := time.Now()
	var sl StoredLayout
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&sl)
	switch {
	case err == mongo.ErrNoDocuments:
		err = errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
	case err != nil:
		err = errors.Wrap(errors.ErrCodeStore, err, "load layout %s", id)
	}
	observability.Store().OnStoreLoad(ctx, id, time.Since(start), err)
	if err != nil {
		return StoredLayout{}, err
	}
	return sl, nil
}

// List returns the most recent layouts, newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]StoredLayout, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := s.coll.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list layouts")
	}
	defer cur.Close(ctx)

	var out []StoredLayout
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode layouts")
	}
	return out, nil
}

// Delete removes a layout.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete layout %s", id)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
