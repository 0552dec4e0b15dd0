package occupancy

import "errors"

// ErrRoomOccupied is returned by DeleteRoom when any bed in the room still
// holds a patient. Handlers should translate this into an HTTP 409.
var ErrRoomOccupied = errors.New("cannot delete room with occupied beds")

// ErrPatientAdmitted is returned by AssignPatient when the patient already
// occupies another bed.
var ErrPatientAdmitted = errors.New("patient is already assigned to a bed")

// ErrPatientInactive is returned by AssignPatient when the referenced
// patient record is not in the Active status required for admission.
var ErrPatientInactive = errors.New("patient is not active")
