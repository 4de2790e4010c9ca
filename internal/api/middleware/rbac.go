package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/duckcorp/portal/internal/core/domain"
)

// RoleLookup fetches the live directory record of a user.
type RoleLookup interface {
	Get(ctx context.Context, username string) (*domain.User, error)
}

// RequireRole enforces a minimum role. With domain.TrustSnapshot the role
// captured in the session decides; with domain.RevalidateAgainstDirectory the
// caller's current record is loaded and a missing record is forbidden.
func RequireRole(required domain.Role, policy domain.AuthPolicy, users RoleLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}

			role := sess.Role
			if policy == domain.RevalidateAgainstDirectory {
				u, err := users.Get(c.Request().Context(), sess.Username)
				if err != nil {
					return domain.ErrForbidden
				}
				role = u.Role
			}

			if !domain.AtLeast(role, required) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
