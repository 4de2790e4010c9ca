package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/duckcorp/portal/internal/core/domain"
	"github.com/duckcorp/portal/internal/core/ports"
	"github.com/duckcorp/portal/internal/pkg/metrics"
)

// AuthService implements login, registration and logout on top of the
// directory and the session binding.
type AuthService struct {
	users    ports.UserDirectory
	sessions *SessionService
	log      zerolog.Logger
}

func NewAuthService(users ports.UserDirectory, sessions *SessionService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, log: log}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Session, error) {
	user, err := s.users.VerifyCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrBadCredential) {
			metrics.LoginsTotal.WithLabelValues("bad_credential").Inc()
			s.log.Info().Str("username", username).Msg("login rejected")
		}
		return "", nil, err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return s.sessions.Create(ctx, user)
}

// Register creates the account and opens a session for it.
func (s *AuthService) Register(ctx context.Context, username, password string) (string, *domain.Session, error) {
	user, err := s.users.Register(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	return s.sessions.Create(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	return s.sessions.Resolve(ctx, token)
}
