package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/duckcorp/portal/internal/core/ports"
)

const collectionsCollection = "collections"

// CollectionStore keeps every portal collection as one document whose _id is
// the collection name. Saves filter on the version field, so a stale writer
// matches nothing and gets ports.ErrVersionConflict.
type CollectionStore struct {
	coll *mongo.Collection
}

func NewCollectionStore(db *mongo.Database) *CollectionStore {
	return &CollectionStore{coll: db.Collection(collectionsCollection)}
}

type collectionDoc struct {
	Name      string    `bson:"_id"`
	Version   int64     `bson:"version"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (s *CollectionStore) Load(ctx context.Context, name string) (ports.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc collectionDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ports.Record{}, ports.ErrCollectionNotFound
		}
		return ports.Record{}, fmt.Errorf("find collection %s: %w", name, err)
	}
	return ports.Record{Data: []byte(doc.Data), Version: doc.Version}, nil
}

func (s *CollectionStore) Save(ctx context.Context, name string, data []byte, expected int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	if expected == 0 {
		_, err := s.coll.InsertOne(ctx, collectionDoc{Name: name, Version: 1, Data: string(data), UpdatedAt: now})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return 0, ports.ErrVersionConflict
			}
			return 0, fmt.Errorf("insert collection %s: %w", name, err)
		}
		return 1, nil
	}

	filter := bson.M{"_id": name, "version": expected}
	update := bson.M{"$set": bson.M{
		"version":    expected + 1,
		"data":       string(data),
		"updated_at": now,
	}}
	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("update collection %s: %w", name, err)
	}
	if res.MatchedCount == 0 {
		return 0, ports.ErrVersionConflict
	}
	return expected + 1, nil
}

func (s *CollectionStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
