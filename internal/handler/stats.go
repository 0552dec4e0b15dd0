package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Stats reports hospital-wide and per-ward occupancy.  GET /v1/stats
func (h *OccupancyHandler) Stats(c echo.Context) error {
	summary, err := h.Occupancy.Summary(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
