package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdmittablePatients lists active patients who do not currently occupy a
// bed, for admission pickers.  GET /v1/patients/admittable
func (h *OccupancyHandler) AdmittablePatients(c echo.Context) error {
	patients, err := h.Occupancy.AdmittablePatients(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"patients": patients, "count": len(patients)})
}
