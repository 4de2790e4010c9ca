package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/duckcorp/portal/internal/core/ports"
	"github.com/duckcorp/portal/internal/pkg/metrics"
)

const maxSaveAttempts = 3

// Collection is a typed view over one named collection in a CollectionStore.
//
// Load never fails: an absent, empty, malformed or unreadable collection
// yields the empty value. The first-start contents set by WithSeed are only
// ever written by SeedIfAbsent, never returned by a read. Update runs load → modify → save inside the
// collection's exclusive section and saves with an optimistic version check,
// so neither another goroutine nor another process can make it lose an update.
type Collection[T any] struct {
	name     string
	store    ports.CollectionStore
	locks    *Serializer
	empty    func() T
	seed     func() T
	log      zerolog.Logger
}

// NewCollection binds name in store. empty must return a fresh value on
// every call; the result is mutated by Update.
func NewCollection[T any](name string, store ports.CollectionStore, locks *Serializer, empty func() T, log zerolog.Logger) *Collection[T] {
	if locks == nil {
		locks = NewSerializer(0)
	}
	return &Collection[T]{
		name:  name,
		store: store,
		locks: locks,
		empty: empty,
		log:   log.With().Str("collection", name).Logger(),
	}
}

// WithSeed sets the value SeedIfAbsent writes. Without it the empty value
// is seeded.
func (c *Collection[T]) WithSeed(seed func() T) *Collection[T] {
	c.seed = seed
	return c
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

// Load returns the current value, or the empty value.
func (c *Collection[T]) Load(ctx context.Context) T {
	v, _ := c.load(ctx)
	return v
}

// Update applies fn to the current value and saves the result. When fn
// returns an error nothing is written and that error is returned as is.
// Storage faults on save are returned wrapped.
func (c *Collection[T]) Update(ctx context.Context, fn func(*T) error) error {
	unlock := c.locks.Lock(c.name)
	defer unlock()

	var lastErr error
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		value, version := c.load(ctx)
		if err := fn(&value); err != nil {
			return err
		}

		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", c.name, err)
		}

		_, err = c.store.Save(ctx, c.name, data, version)
		if err == nil {
			metrics.CollectionWritesTotal.WithLabelValues(c.name, "ok").Inc()
			return nil
		}
		if !errors.Is(err, ports.ErrVersionConflict) {
			metrics.CollectionWritesTotal.WithLabelValues(c.name, "error").Inc()
			return fmt.Errorf("save %s: %w", c.name, err)
		}

		metrics.CollectionConflictsTotal.WithLabelValues(c.name).Inc()
		c.log.Debug().Int("attempt", attempt).Int64("version", version).Msg("version conflict, retrying")
		lastErr = err
	}

	metrics.CollectionWritesTotal.WithLabelValues(c.name, "error").Inc()
	return fmt.Errorf("save %s: %w", c.name, lastErr)
}

// SeedIfAbsent saves the seed value when the collection was never written.
// It reports whether anything was written.
func (c *Collection[T]) SeedIfAbsent(ctx context.Context) (bool, error) {
	unlock := c.locks.Lock(c.name)
	defer unlock()

	_, err := c.store.Load(ctx, c.name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ports.ErrCollectionNotFound) {
		return false, fmt.Errorf("seed %s: %w", c.name, err)
	}

	seed := c.empty
	if c.seed != nil {
		seed = c.seed
	}
	data, err := json.MarshalIndent(seed(), "", "  ")
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", c.name, err)
	}
	if _, err := c.store.Save(ctx, c.name, data, 0); err != nil {
		if errors.Is(err, ports.ErrVersionConflict) {
			return false, nil
		}
		return false, fmt.Errorf("seed %s: %w", c.name, err)
	}
	return true, nil
}

// load returns the decoded value and the version the next save must expect.
// A storage fault yields version 0: a following save then only succeeds if the
// collection really is absent, so a transient read failure cannot clobber data.
func (c *Collection[T]) load(ctx context.Context) (T, int64) {
	rec, err := c.store.Load(ctx, c.name)
	switch {
	case errors.Is(err, ports.ErrCollectionNotFound):
		c.fallback("absent")
		return c.empty(), 0
	case err != nil:
		c.log.Warn().Err(err).Msg("collection load failed, reading as empty")
		c.fallback("storage_error")
		return c.empty(), 0
	}

	trimmed := bytes.TrimSpace(rec.Data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		c.fallback("empty")
		return c.empty(), rec.Version
	}

	var value T
	if err := json.Unmarshal(trimmed, &value); err != nil {
		c.log.Warn().Err(err).Int64("version", rec.Version).Msg("collection is malformed, reading as empty")
		c.fallback("malformed")
		return c.empty(), rec.Version
	}
	return value, rec.Version
}

func (c *Collection[T]) fallback(reason string) {
	metrics.CollectionLoadFallbacksTotal.WithLabelValues(c.name, reason).Inc()
}
