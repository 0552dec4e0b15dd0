package router

import (
	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-occupancy/internal/handler"
	"github.com/medicore/hospital-occupancy/internal/middleware"
)

// RegisterOccupancy registers the room, bed, patient and stats endpoints.
// All routes require a valid staff token.  Changing the room inventory is
// restricted to ADMIN; day-to-day bed operations are open to every role.
// The optional cache middleware is applied to the read listings only.
func RegisterOccupancy(e *echo.Echo, h *handler.OccupancyHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN", "STAFF"))

	reads := []echo.MiddlewareFunc{}
	if cache != nil {
		reads = append(reads, cache)
	}

	g.GET("/rooms", h.ListRooms, reads...)
	g.GET("/rooms/:id", h.GetRoom, reads...)
	g.GET("/wards", h.Wards, reads...)
	g.GET("/beds", h.ListBedsByStatus, reads...)
	g.GET("/patients/admittable", h.AdmittablePatients)
	g.GET("/stats", h.Stats, reads...)

	g.POST("/rooms/:id/beds/:bed_number/assign", h.AssignBed)
	g.POST("/rooms/:id/beds/:bed_number/discharge", h.DischargeBed)
	g.PATCH("/rooms/:id/beds/:bed_number/status", h.SetBedStatus)

	admin := middleware.RequireRole("ADMIN")
	g.POST("/rooms", h.CreateRoom, admin)
	g.PUT("/rooms/:id", h.UpdateRoom, admin)
	g.DELETE("/rooms/:id", h.DeleteRoom, admin)
}
