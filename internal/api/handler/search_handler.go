package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/duckcorp/portal/internal/core/ports"
	"github.com/duckcorp/portal/internal/pkg/metrics"
)

type SearchHandler struct {
	relay ports.SearchRelay
	log   zerolog.Logger
}

func NewSearchHandler(relay ports.SearchRelay, log zerolog.Logger) *SearchHandler {
	return &SearchHandler{relay: relay, log: log}
}

// Search relays the query to the external engine and returns its HTML page
// unchanged.
//
// @Summary      Relay a web search
// @Tags         search
// @Produce      html
// @Param        q    query     string  false  "Search terms"
// @Success      200  {string}  string
// @Failure      502  {object}  ErrorResponse
// @Router       /proxy/search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")

	page, err := h.relay.Search(c.Request().Context(), query)
	if err != nil {
		metrics.SearchRelayErrorsTotal.Inc()
		h.log.Warn().Err(err).Msg("search relay failed")
		return err
	}
	return c.HTMLBlob(http.StatusOK, page)
}
