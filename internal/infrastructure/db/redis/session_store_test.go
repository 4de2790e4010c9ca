package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/duckcorp/portal/internal/core/domain"
)

// These tests need a Redis server; set PORTAL_TEST_REDIS_ADDR to run them.
func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	addr := os.Getenv("PORTAL_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PORTAL_TEST_REDIS_ADDR not set")
	}

	client, err := Connect(context.Background(), Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := uuid.NewString()

	err := s.Put(ctx, &domain.Session{ID: id, Username: "alice", Role: domain.RoleAdmin, Tags: []string{"founder"}}, time.Minute)
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
	require.Equal(t, domain.RoleAdmin, got.Role)
	require.Equal(t, []string{"founder"}, got.Tags)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_TTL(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := uuid.NewString()

	require.NoError(t, s.Put(ctx, &domain.Session{ID: id, Username: "bob"}, time.Second))

	ttl, err := s.client.TTL(ctx, s.key(id)).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))
	require.LessOrEqual(t, ttl, time.Second)
}

func TestSessionStore_Key(t *testing.T) {
	s := NewSessionStore(nil)
	require.Equal(t, "session:abc", s.key("abc"))
}
