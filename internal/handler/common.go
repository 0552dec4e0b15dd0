package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-occupancy/internal/model"
	"github.com/medicore/hospital-occupancy/internal/occupancy"
	"github.com/medicore/hospital-occupancy/internal/repository"
)

// OccupancyHandler exposes the room, bed, patient and stats endpoints on top
// of the occupancy service.
type OccupancyHandler struct {
	Occupancy *occupancy.Service
}

func NewOccupancyHandler(svc *occupancy.Service) *OccupancyHandler {
	if svc == nil {
		panic("nil occupancy service passed to NewOccupancyHandler")
	}
	return &OccupancyHandler{Occupancy: svc}
}

// pathID parses the named path parameter as a positive integer id.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// domainError translates occupancy and store errors into HTTP responses.
// Missing records map to 404, state conflicts to 409 and validation
// failures to 400; anything else is reported as a 500 without leaking the
// underlying error to the client.
func domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrBedNotFound),
		errors.Is(err, repository.ErrPatientNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrBedOccupied),
		errors.Is(err, occupancy.ErrRoomOccupied),
		errors.Is(err, occupancy.ErrPatientAdmitted),
		errors.Is(err, occupancy.ErrPatientInactive):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidBedStatus):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
