package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/duckcorp/portal/internal/core/ports"
)

type TagHandler struct {
	tags ports.TagRegistry
}

func NewTagHandler(tags ports.TagRegistry) *TagHandler {
	return &TagHandler{tags: tags}
}

// List returns the tag vocabulary in creation order.
//
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Success      200  {array}   string
// @Router       /api/tags [get]
func (h *TagHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.tags.List(c.Request().Context()))
}

// Create registers a new tag.
//
// @Summary      Create a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTagRequest  true  "Tag name"
// @Success      201   {object}  okResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/tags/create [post]
func (h *TagHandler) Create(c echo.Context) error {
	var req createTagRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.tags.Create(c.Request().Context(), req.Name); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, okResponse{OK: true})
}
