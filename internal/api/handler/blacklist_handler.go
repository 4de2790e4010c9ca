package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/duckcorp/portal/internal/core/ports"
)

type BlacklistHandler struct {
	blacklist ports.Blacklist
}

func NewBlacklistHandler(blacklist ports.Blacklist) *BlacklistHandler {
	return &BlacklistHandler{blacklist: blacklist}
}

// List returns the blocked client identifiers, sorted.
//
// @Summary      List blocked clients
// @Tags         blacklist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   string
// @Failure      403  {object}  ErrorResponse
// @Router       /api/blacklist [get]
func (h *BlacklistHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.blacklist.List(c.Request().Context()))
}

// Add blocks a client identifier. The block applies from the next request.
//
// @Summary      Block a client
// @Tags         blacklist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      blacklistRequest  true  "Client identifier"
// @Success      201   {object}  okResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /api/blacklist [post]
func (h *BlacklistHandler) Add(c echo.Context) error {
	var req blacklistRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.blacklist.Add(c.Request().Context(), req.IP); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, okResponse{OK: true})
}
