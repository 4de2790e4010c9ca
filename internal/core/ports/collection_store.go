package ports

import (
	"context"
	"errors"
)

var (
	// ErrCollectionNotFound is returned by Load when a collection was never saved.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrVersionConflict is returned by Save when the stored version moved on
	// since the caller loaded it.
	ErrVersionConflict = errors.New("collection version conflict")
)

// Record is the raw persisted form of a named collection.
type Record struct {
	Data    []byte
	Version int64
}

// CollectionStore persists whole named collections. Implementations must
// replace a collection atomically so a concurrent Load never observes a
// partially written value.
type CollectionStore interface {
	Load(ctx context.Context, name string) (Record, error)
	// Save writes data when the stored version equals expected (0 means the
	// collection must not exist yet) and returns the new version.
	Save(ctx context.Context, name string, data []byte, expected int64) (int64, error)
	Ping(ctx context.Context) error
}
