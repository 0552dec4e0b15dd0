// Package queue defines message payloads exchanged over the message broker.
package queue

// BedEventQueue is the durable queue all bed occupancy events are published to.
const BedEventQueue = "bed.events"

// Event types carried in BedEvent.Type.
const (
	EventBedAssigned   = "bed.assigned"
	EventBedDischarged = "bed.discharged"
)

// BedEvent is published after a bed assignment or discharge succeeds.
// It contains enough information for downstream consumers to log, notify,
// or feed the admissions audit trail without querying the primary database.
type BedEvent struct {
	Type          string `json:"type"`
	RoomID        int64  `json:"room_id"`
	RoomNumber    string `json:"room_number"`
	Ward          string `json:"ward"`
	BedNumber     string `json:"bed_number"`
	PatientID     int64  `json:"patient_id,omitempty"`
	PatientName   string `json:"patient_name,omitempty"`
	AdmissionDate string `json:"admission_date,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}
