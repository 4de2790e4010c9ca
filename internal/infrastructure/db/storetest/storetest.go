// Package storetest holds the behaviour every ports.CollectionStore must
// share. Driver packages run it from their own tests.
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/duckcorp/portal/internal/core/ports"
)

// RunCollectionStore exercises store. newStore must return an empty store.
func RunCollectionStore(t *testing.T, newStore func(t *testing.T) ports.CollectionStore) {
	t.Run("absent collection", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Load(context.Background(), "tags")
		require.ErrorIs(t, err, ports.ErrCollectionNotFound)
	})

	t.Run("create then update", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		v, err := store.Save(ctx, "tags", []byte(`["a"]`), 0)
		require.NoError(t, err)
		require.Equal(t, int64(1), v)

		rec, err := store.Load(ctx, "tags")
		require.NoError(t, err)
		require.JSONEq(t, `["a"]`, string(rec.Data))
		require.Equal(t, int64(1), rec.Version)

		v, err = store.Save(ctx, "tags", []byte(`["a","b"]`), rec.Version)
		require.NoError(t, err)
		require.Equal(t, int64(2), v)

		rec, err = store.Load(ctx, "tags")
		require.NoError(t, err)
		require.JSONEq(t, `["a","b"]`, string(rec.Data))
		require.Equal(t, int64(2), rec.Version)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, err := store.Save(ctx, "chat", []byte(`[]`), 0)
		require.NoError(t, err)

		_, err = store.Save(ctx, "chat", []byte(`["late"]`), 0)
		require.ErrorIs(t, err, ports.ErrVersionConflict)

		_, err = store.Save(ctx, "chat", []byte(`["late"]`), 7)
		require.ErrorIs(t, err, ports.ErrVersionConflict)

		rec, err := store.Load(ctx, "chat")
		require.NoError(t, err)
		require.JSONEq(t, `[]`, string(rec.Data))
	})

	t.Run("collections are independent", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, err := store.Save(ctx, "users", []byte(`{}`), 0)
		require.NoError(t, err)
		_, err = store.Save(ctx, "blacklist", []byte(`["10.0.0.1"]`), 0)
		require.NoError(t, err)

		rec, err := store.Load(ctx, "users")
		require.NoError(t, err)
		require.JSONEq(t, `{}`, string(rec.Data))
	})

	t.Run("one winner per version", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		const writers = 8
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := store.Save(ctx, "files", []byte(`[]`), 0); err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		require.Equal(t, 1, wins)
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, newStore(t).Ping(context.Background()))
	})
}
