package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/duckcorp/portal/internal/api/middleware"
	"github.com/duckcorp/portal/internal/core/domain"
)

// ctxSession returns the snapshot resolved by the Session middleware.
// Routes behind RequireSession always have one; the check keeps handlers
// safe when mounted without it.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return sess, nil
}

// bind decodes the body into req and runs the struct validator. Missing
// required fields surface as domain.ErrMissingField (see RequestValidator).
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
