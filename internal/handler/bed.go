package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-occupancy/internal/model"
	"github.com/medicore/hospital-occupancy/internal/queue"
	publisher "github.com/medicore/hospital-occupancy/internal/service"
)

// ----- DTOs -----

type assignReq struct {
	PatientID     int64   `json:"patient_id"`
	PatientName   string  `json:"patient_name"`
	AdmissionDate string  `json:"admission_date"` // "2006-01-02" or RFC 3339
	Notes         *string `json:"notes"`
}

type statusReq struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

func parseAdmissionDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// AssignBed admits a patient to a bed.  A bed event is published after the
// write succeeds; publish failures are ignored so the broker never blocks
// admissions.  POST /v1/rooms/:id/beds/:bed_number/assign
func (h *OccupancyHandler) AssignBed(c echo.Context) error {
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	bedNumber := strings.TrimSpace(c.Param("bed_number"))
	if bedNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bed_number required"})
	}

	var req assignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.PatientID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "patient_id required"})
	}
	admitted, ok := parseAdmissionDate(req.AdmissionDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid admission_date"})
	}

	room, err := h.Occupancy.AssignPatient(c.Request().Context(), roomID, bedNumber, model.Assignment{
		PatientID:     req.PatientID,
		PatientName:   strings.TrimSpace(req.PatientName),
		AdmissionDate: admitted,
		Notes:         req.Notes,
	})
	if err != nil {
		return domainError(c, err)
	}

	if bed := room.Bed(bedNumber); bed != nil {
		ev := queue.BedEvent{
			Type:       queue.EventBedAssigned,
			RoomID:     room.ID,
			RoomNumber: room.RoomNumber,
			Ward:       room.Ward,
			BedNumber:  bed.BedNumber,
			PatientID:  req.PatientID,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		}
		if bed.Patient != nil {
			ev.PatientName = bed.Patient.DisplayName
		}
		if bed.AdmissionDate != nil {
			ev.AdmissionDate = bed.AdmissionDate.Format("2006-01-02")
		}
		_ = publisher.PublishBedEvent(c.Request().Context(), ev)
	}
	return c.JSON(http.StatusOK, room)
}

// DischargeBed vacates a bed and clears the patient fields.  Discharging an
// already empty bed is a no-op that still returns 200.
// POST /v1/rooms/:id/beds/:bed_number/discharge
func (h *OccupancyHandler) DischargeBed(c echo.Context) error {
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	bedNumber := strings.TrimSpace(c.Param("bed_number"))
	if bedNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bed_number required"})
	}

	// Capture the occupant before the write for the discharge event.
	var prior *model.PatientRef
	if room, err := h.Occupancy.GetRoom(c.Request().Context(), roomID); err == nil {
		if bed := room.Bed(bedNumber); bed != nil && bed.Patient != nil {
			p := *bed.Patient
			prior = &p
		}
	}

	room, err := h.Occupancy.UnassignPatient(c.Request().Context(), roomID, bedNumber)
	if err != nil {
		return domainError(c, err)
	}

	if prior != nil {
		_ = publisher.PublishBedEvent(c.Request().Context(), queue.BedEvent{
			Type:        queue.EventBedDischarged,
			RoomID:      room.ID,
			RoomNumber:  room.RoomNumber,
			Ward:        room.Ward,
			BedNumber:   bedNumber,
			PatientID:   prior.ID,
			PatientName: prior.DisplayName,
			OccurredAt:  time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, room)
}

// SetBedStatus moves a bed between maintenance states.
// PATCH /v1/rooms/:id/beds/:bed_number/status
func (h *OccupancyHandler) SetBedStatus(c echo.Context) error {
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	bedNumber := strings.TrimSpace(c.Param("bed_number"))
	if bedNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bed_number required"})
	}

	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	room, err := h.Occupancy.SetBedStatus(c.Request().Context(), roomID, bedNumber, strings.TrimSpace(req.Status), req.Notes)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// ListBedsByStatus returns all beds in one status across every room.
// GET /v1/beds?status=Available
func (h *OccupancyHandler) ListBedsByStatus(c echo.Context) error {
	status := strings.TrimSpace(c.QueryParam("status"))
	if status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status query parameter required"})
	}
	beds, err := h.Occupancy.BedsByStatus(c.Request().Context(), status)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"beds": beds, "count": len(beds)})
}
