package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/duckcorp/portal/internal/core/ports"
)

// EntryHandler serves a newest-first log. The same handler type backs both
// announcements and chat; the log decides capacity and read limit.
type EntryHandler struct {
	log ports.EntryLog
}

func NewEntryHandler(log ports.EntryLog) *EntryHandler {
	return &EntryHandler{log: log}
}

// List returns the log, newest first.
//
// @Summary      List announcements or chat messages
// @Tags         announcements,chat
// @Produce      json
// @Success      200  {array}   domain.Entry
// @Router       /api/announcements [get]
// @Router       /api/chat [get]
func (h *EntryHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.log.List(c.Request().Context(), 0))
}

// Post appends an entry authored by the caller.
//
// @Summary      Post an announcement or chat message
// @Tags         announcements,chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postEntryRequest  true  "Message text"
// @Success      201   {object}  domain.Entry
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /api/announce [post]
// @Router       /api/chat [post]
func (h *EntryHandler) Post(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req postEntryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	entry, err := h.log.Append(c.Request().Context(), sess.Username, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}
