// Package memory provides in-process stores. They back tests and
// single-instance development runs; nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/duckcorp/portal/internal/core/ports"
)

// CollectionStore keeps collections in a map.
type CollectionStore struct {
	mu      sync.RWMutex
	records map[string]ports.Record
}

func NewCollectionStore() *CollectionStore {
	return &CollectionStore{records: make(map[string]ports.Record)}
}

func (s *CollectionStore) Load(_ context.Context, name string) (ports.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[name]
	if !ok {
		return ports.Record{}, ports.ErrCollectionNotFound
	}
	return ports.Record{Data: append([]byte(nil), rec.Data...), Version: rec.Version}, nil
}

func (s *CollectionStore) Save(_ context.Context, name string, data []byte, expected int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.records[name].Version != expected {
		return 0, ports.ErrVersionConflict
	}
	next := expected + 1
	s.records[name] = ports.Record{Data: append([]byte(nil), data...), Version: next}
	return next, nil
}

// Put stores raw data unconditionally, bumping the version. Tests use it to
// plant corrupt or legacy content.
func (s *CollectionStore) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[name] = ports.Record{Data: append([]byte(nil), data...), Version: s.records[name].Version + 1}
}

func (s *CollectionStore) Ping(context.Context) error { return nil }
