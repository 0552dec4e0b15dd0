package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-occupancy/internal/model"
	"github.com/medicore/hospital-occupancy/internal/occupancy"
)

// ----- DTOs -----

type bedSeedReq struct {
	BedNumber string `json:"bed_number"`
	Status    string `json:"status"`
}

type createRoomReq struct {
	RoomNumber string       `json:"room_number"`
	Ward       string       `json:"ward"`
	Floor      string       `json:"floor"`
	RoomType   string       `json:"room_type"`
	Beds       []bedSeedReq `json:"beds"`
}

type updateRoomReq struct {
	RoomNumber string `json:"room_number"`
	Ward       string `json:"ward"`
	Floor      string `json:"floor"`
	RoomType   string `json:"room_type"`
}

// ListRooms returns all rooms, optionally narrowed by ward and a free-text
// search.  GET /v1/rooms?ward=ICU&search=101
func (h *OccupancyHandler) ListRooms(c echo.Context) error {
	ward := strings.TrimSpace(c.QueryParam("ward"))
	search := strings.TrimSpace(c.QueryParam("search"))
	if search == "" {
		search = strings.TrimSpace(c.QueryParam("q"))
	}

	rooms, err := h.Occupancy.ListRooms(c.Request().Context(), ward, search)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms, "count": len(rooms)})
}

// Wards returns the distinct ward names for filter dropdowns, headed by the
// "All" sentinel.  GET /v1/wards
func (h *OccupancyHandler) Wards(c echo.Context) error {
	rooms, err := h.Occupancy.ListRooms(c.Request().Context(), "", "")
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"wards": occupancy.Wards(rooms)})
}

// GetRoom returns one room with its beds.  GET /v1/rooms/:id
func (h *OccupancyHandler) GetRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	room, err := h.Occupancy.GetRoom(c.Request().Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// CreateRoom creates a room with its initial bed layout.  POST /v1/rooms
func (h *OccupancyHandler) CreateRoom(c echo.Context) error {
	var req createRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RoomNumber = strings.TrimSpace(req.RoomNumber)
	req.Ward = strings.TrimSpace(req.Ward)
	if req.RoomNumber == "" || req.Ward == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_number and ward required"})
	}

	room := model.Room{
		RoomNumber: req.RoomNumber,
		Ward:       req.Ward,
		Floor:      strings.TrimSpace(req.Floor),
		RoomType:   strings.TrimSpace(req.RoomType),
	}
	for _, b := range req.Beds {
		num := strings.TrimSpace(b.BedNumber)
		if num == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "bed_number required for every bed"})
		}
		room.Beds = append(room.Beds, model.Bed{
			BedNumber: num,
			Status:    model.BedStatus(strings.TrimSpace(b.Status)),
		})
	}

	if err := h.Occupancy.CreateRoom(c.Request().Context(), &room); err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// UpdateRoom replaces a room's attributes, leaving beds untouched.
// PUT /v1/rooms/:id
func (h *OccupancyHandler) UpdateRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req updateRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RoomNumber = strings.TrimSpace(req.RoomNumber)
	req.Ward = strings.TrimSpace(req.Ward)
	if req.RoomNumber == "" || req.Ward == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_number and ward required"})
	}

	room, err := h.Occupancy.UpdateRoom(c.Request().Context(), id, occupancy.RoomAttrs{
		RoomNumber: req.RoomNumber,
		Ward:       req.Ward,
		Floor:      strings.TrimSpace(req.Floor),
		RoomType:   strings.TrimSpace(req.RoomType),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom removes a room and its beds unless any bed is occupied.
// DELETE /v1/rooms/:id
func (h *OccupancyHandler) DeleteRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Occupancy.DeleteRoom(c.Request().Context(), id); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
