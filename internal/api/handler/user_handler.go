package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/duckcorp/portal/internal/core/ports"
)

// UserHandler serves the admin user-management endpoints.
type UserHandler struct {
	users ports.UserDirectory
}

func NewUserHandler(users ports.UserDirectory) *UserHandler {
	return &UserHandler{users: users}
}

// List returns every user with role and tags, keyed by username.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]userView
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, toUserViews(h.users.List(c.Request().Context())))
}

// SetRole changes a user's role. Sessions already open keep their snapshot.
//
// @Summary      Set a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      setRoleRequest  true  "Target user and role"
// @Success      200   {object}  okResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/user/set-role [post]
func (h *UserHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.users.SetRole(c.Request().Context(), req.Username, req.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// AddTag grants a registered tag to a user.
//
// @Summary      Grant a tag
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addTagRequest  true  "Target user and tag"
// @Success      200   {object}  okResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/user/add-tag [post]
func (h *UserHandler) AddTag(c echo.Context) error {
	var req addTagRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.users.AddTag(c.Request().Context(), req.Username, req.Tag); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}
