package ports

import (
	"context"
	"time"

	"github.com/duckcorp/portal/internal/core/domain"
)

// SessionStore keeps session snapshots keyed by session id.
type SessionStore interface {
	// Put stores s under s.ID; it expires after ttl.
	Put(ctx context.Context, s *domain.Session, ttl time.Duration) error
	// Get returns domain.ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
