package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/duckcorp/portal/internal/core/ports"
	"github.com/duckcorp/portal/internal/pkg/metrics"
)

// BlacklistGate rejects requests from listed client identifiers before any
// routing, session or role logic runs. Register it with echo.Pre.
//
// Blocked clients are redirected to blockedURL; a request for blockedURL
// itself gets a plain 403 so the redirect cannot loop.
func BlacklistGate(list ports.Blacklist, blockedURL string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID := c.RealIP()
			if !list.IsBlocked(c.Request().Context(), clientID) {
				return next(c)
			}

			metrics.BlockedRequestsTotal.Inc()
			log.Info().
				Str("client_id", clientID).
				Str("path", c.Request().URL.Path).
				Msg("blocked request")

			if blockedURL == "" || c.Request().URL.Path == blockedURL {
				return c.String(http.StatusForbidden, "blocked")
			}
			return c.Redirect(http.StatusFound, blockedURL)
		}
	}
}
