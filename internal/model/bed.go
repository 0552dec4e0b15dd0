package model

import (
	"errors"
	"time"
)

// BedStatus enumerates the occupancy states a bed can be in.  Available is
// the initial state of every newly created bed; there is no terminal state.
type BedStatus string

const (
	BedAvailable   BedStatus = "Available"
	BedOccupied    BedStatus = "Occupied"
	BedReserved    BedStatus = "Reserved"
	BedMaintenance BedStatus = "Maintenance"
	BedCleaning    BedStatus = "Cleaning"
)

// ErrInvalidBedStatus is returned when a status string is outside the
// allowed enumeration.  Handlers should translate this into an HTTP 400.
var ErrInvalidBedStatus = errors.New("invalid bed status")

// ParseBedStatus validates a raw status string and returns the typed value.
func ParseBedStatus(s string) (BedStatus, error) {
	switch BedStatus(s) {
	case BedAvailable, BedOccupied, BedReserved, BedMaintenance, BedCleaning:
		return BedStatus(s), nil
	}
	return "", ErrInvalidBedStatus
}

// PatientRef is a normalized reference to a patient.  The record store may
// return reference fields either as a bare id or as an expanded {Id, Name}
// pair depending on the query shape; repositories fold both shapes into
// this single type before a bed reaches the occupancy service.
type PatientRef struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
}

// Bed describes one physical bed's occupancy state.  Beds are addressed by
// their bed number, which is unique within the owning room; the store id is
// an internal detail used to target updates.
//
// Invariant: Status == BedOccupied if and only if Patient and AdmissionDate
// are both set.  Every transition away from Occupied clears them together
// with the status change.
type Bed struct {
	ID            int64       `json:"bed_id"`
	RoomID        int64       `json:"room_id"`
	BedNumber     string      `json:"bed_number"`
	Status        BedStatus   `json:"status"`
	Patient       *PatientRef `json:"patient,omitempty"`
	AdmissionDate *time.Time  `json:"admission_date,omitempty"`
	Notes         *string     `json:"notes,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Occupied reports whether the bed currently holds a patient.
func (b *Bed) Occupied() bool { return b.Status == BedOccupied }

// ConsistentOccupancy reports whether the bed satisfies the occupancy
// invariant: patient reference, patient display name and admission date are
// all present exactly when the status is Occupied.
func (b *Bed) ConsistentOccupancy() bool {
	if b.Status == BedOccupied {
		return b.Patient != nil && b.Patient.DisplayName != "" && b.AdmissionDate != nil
	}
	return b.Patient == nil && b.AdmissionDate == nil
}

// ClearAssignment nulls the patient fields and returns the bed to Available.
func (b *Bed) ClearAssignment() {
	b.Status = BedAvailable
	b.Patient = nil
	b.AdmissionDate = nil
	b.Notes = nil
}

// BedPlacement annotates a bed with the attributes of its owning room.  It
// backs flat bed listings filtered by status, where the caller needs the
// room context without fetching each room separately.
type BedPlacement struct {
	Bed
	RoomNumber string `json:"room_number"`
	Ward       string `json:"ward"`
	Floor      string `json:"floor"`
	RoomType   string `json:"room_type"`
}

// Assignment carries the data needed to admit a patient to a bed.
//
// Fields:
//
//	PatientID     - id of the patient being admitted.
//	PatientName   - display name stored denormalized on the bed; when empty
//	                the occupancy service composes it from the patient record.
//	AdmissionDate - date the patient was admitted.
//	Notes         - optional free-form notes, nil when not provided.
type Assignment struct {
	PatientID     int64
	PatientName   string
	AdmissionDate time.Time
	Notes         *string
}
