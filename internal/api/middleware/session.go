package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/duckcorp/portal/internal/core/domain"
)

// CookieName is the cookie that carries the session handle for browsers.
const CookieName = "portal_session"

const (
	ctxSession = "session"
	ctxToken   = "session_token"
)

// SessionResolver maps a handle to its snapshot.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Session, error)
}

// Session resolves the caller's session, if any, and stores the snapshot in
// the echo context. Requests without a usable handle continue anonymously.
// The handle is read from "Authorization: Bearer <token>" or the session cookie.
func Session(resolver SessionResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				return next(c)
			}

			sess, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrSessionNotFound) {
					log.Warn().Err(err).Msg("session lookup failed")
				}
				return next(c)
			}

			c.Set(ctxSession, sess)
			c.Set(ctxToken, token)
			return next(c)
		}
	}
}

// RequireSession rejects anonymous requests with domain.ErrUnauthenticated.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := SessionFrom(c); !ok {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}

// SessionFrom returns the snapshot resolved for this request.
func SessionFrom(c echo.Context) (*domain.Session, bool) {
	sess, ok := c.Get(ctxSession).(*domain.Session)
	return sess, ok && sess != nil
}

// TokenFrom returns the handle the session was resolved from.
func TokenFrom(c echo.Context) string {
	token, _ := c.Get(ctxToken).(string)
	return token
}

// WithSession stores sess in c. Tests use it to skip token resolution.
func WithSession(c echo.Context, sess *domain.Session, token string) {
	c.Set(ctxSession, sess)
	c.Set(ctxToken, token)
}

func tokenFromRequest(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}
