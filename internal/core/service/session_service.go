package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/duckcorp/portal/internal/core/domain"
	"github.com/duckcorp/portal/internal/core/ports"
	"github.com/duckcorp/portal/internal/pkg/metrics"
)

// SessionService binds identity snapshots to opaque handles. A handle is an
// HS256 token carrying only the session id; the snapshot itself stays in the
// SessionStore so Destroy invalidates the handle.
type SessionService struct {
	store  ports.SessionStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(store ports.SessionStore, secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{store: store, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Create snapshots u and returns the handle for it.
func (s *SessionService) Create(ctx context.Context, u *domain.User) (string, *domain.Session, error) {
	now := s.now().UTC()
	sess := domain.NewSession(uuid.NewString(), u, now)
	if err := s.store.Put(ctx, sess, s.ttl); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	claims := jwt.MapClaims{
		"sid": sess.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		_ = s.store.Delete(ctx, sess.ID)
		return "", nil, fmt.Errorf("sign session handle: %w", err)
	}

	metrics.SessionsCreatedTotal.Inc()
	return token, sess, nil
}

// Resolve returns the snapshot for token or domain.ErrSessionNotFound.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	id, err := s.sessionID(token)
	if err != nil {
		return nil, err
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.ID = id
	return sess, nil
}

// Destroy removes the session behind token. Unknown handles are ignored.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	id, err := s.sessionID(token)
	if err != nil {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionService) sessionID(token string) (string, error) {
	if token == "" {
		return "", domain.ErrSessionNotFound
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionNotFound
	}

	id, _ := claims["sid"].(string)
	if id == "" {
		return "", domain.ErrSessionNotFound
	}
	return id, nil
}
