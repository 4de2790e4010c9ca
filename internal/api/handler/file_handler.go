package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/duckcorp/portal/internal/core/ports"
)

type FileHandler struct {
	files ports.FileLinks
}

func NewFileHandler(files ports.FileLinks) *FileHandler {
	return &FileHandler{files: files}
}

// List returns the file links.
//
// @Summary      List file links
// @Tags         files
// @Produce      json
// @Success      200  {array}   domain.FileLink
// @Router       /api/files [get]
func (h *FileHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.files.List(c.Request().Context()))
}
