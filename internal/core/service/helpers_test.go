package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/duckcorp/portal/internal/core/ports"
	"github.com/duckcorp/portal/internal/infrastructure/db/memory"
)

const testCost = bcrypt.MinCost

var nopLog = zerolog.Nop()

// stubStore wraps a CollectionStore with injectable faults and a delay
// between reading a collection and handing it back, which widens the
// load → save window of concurrent writers.
type stubStore struct {
	inner ports.CollectionStore

	mu        sync.Mutex
	loadErr   error
	saveErr   error
	loadDelay time.Duration
	saves     int
}

func newStubStore() *stubStore {
	return &stubStore{inner: memory.NewCollectionStore()}
}

func (s *stubStore) Load(ctx context.Context, name string) (ports.Record, error) {
	s.mu.Lock()
	loadErr, delay := s.loadErr, s.loadDelay
	s.mu.Unlock()

	if loadErr != nil {
		return ports.Record{}, loadErr
	}
	rec, err := s.inner.Load(ctx, name)
	if delay > 0 {
		time.Sleep(delay)
	}
	return rec, err
}

func (s *stubStore) Save(ctx context.Context, name string, data []byte, expected int64) (int64, error) {
	s.mu.Lock()
	saveErr := s.saveErr
	s.saves++
	s.mu.Unlock()

	if saveErr != nil {
		return 0, saveErr
	}
	return s.inner.Save(ctx, name, data, expected)
}

func (s *stubStore) Ping(ctx context.Context) error { return s.inner.Ping(ctx) }

func (s *stubStore) setLoadErr(err error) {
	s.mu.Lock()
	s.loadErr = err
	s.mu.Unlock()
}

func (s *stubStore) setSaveErr(err error) {
	s.mu.Lock()
	s.saveErr = err
	s.mu.Unlock()
}

func (s *stubStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func raw(t interface{ Fatalf(string, ...any) }, store ports.CollectionStore, name string) string {
	rec, err := store.Load(context.Background(), name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return string(rec.Data)
}
