// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// occupancy service and HTTP handlers to distinguish between different
// failure scenarios. For example, ErrBedOccupied signals that an
// assignment cannot proceed because the target bed already holds a
// patient, while the not-found values identify which entity a lookup
// failed to resolve.
package repository

import "errors"

// ErrRoomNotFound is returned when a room lookup yields no rows.
// Handlers should translate this into an HTTP 404 response.
var ErrRoomNotFound = errors.New("room not found")

// ErrBedNotFound is returned when a bed cannot be resolved within its
// owning room. Handlers should translate this into an HTTP 404 response.
var ErrBedNotFound = errors.New("bed not found")

// ErrPatientNotFound is returned when a patient lookup yields no rows.
var ErrPatientNotFound = errors.New("patient not found")

// ErrBedOccupied is returned when an assignment targets a bed that is
// already occupied. The conditional update in the MySQL store reports it
// without a read-then-write race. Handlers should translate this into an
// HTTP 409 response.
var ErrBedOccupied = errors.New("bed is already occupied")
