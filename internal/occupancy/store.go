// Package occupancy is the single authority for mutating bed state.  It
// enforces the occupancy rules of the hospital: a bed holds patient data
// exactly while it is occupied, a room with occupied beds cannot be
// deleted, and every operation is addressed by room id and bed number,
// never by a bare bed identity.
package occupancy

import (
	"context"

	"github.com/medicore/hospital-occupancy/internal/model"
)

// RoomStore is the room-level slice of the record store.  Every room read
// embeds the full bed collection.
type RoomStore interface {
	List(ctx context.Context) ([]model.Room, error)
	GetByID(ctx context.Context, id int64) (*model.Room, error)
	Create(ctx context.Context, room *model.Room) error
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id int64) error
}

// BedStore mutates individual beds.  A status change and its dependent
// patient-field changes are applied by the store as one atomic write.
type BedStore interface {
	AssignIfVacant(ctx context.Context, bedID int64, a model.Assignment) error
	Clear(ctx context.Context, bedID int64) error
	SetStatus(ctx context.Context, bedID int64, status model.BedStatus, notes *string) error
	ListByStatus(ctx context.Context, status model.BedStatus) ([]model.BedPlacement, error)
	FindByPatient(ctx context.Context, patientID int64) (*model.Bed, error)
}

// PatientStore reads the patient projection used for assignment validation
// and display composition.
type PatientStore interface {
	GetPatient(ctx context.Context, id int64) (*model.Patient, error)
	ListAdmittable(ctx context.Context) ([]model.Patient, error)
}
