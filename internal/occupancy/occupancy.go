package occupancy

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/medicore/hospital-occupancy/internal/model"
	"github.com/medicore/hospital-occupancy/internal/repository"
)

// Service coordinates room and bed state against the injected stores.  All
// bed mutation in the system funnels through its three write operations
// (assign, unassign, set status) plus room create/update/delete; no other
// code path touches bed state.
type Service struct {
	rooms    RoomStore
	beds     BedStore
	patients PatientStore
}

// New constructs the occupancy service.
func New(rooms RoomStore, beds BedStore, patients PatientStore) *Service {
	return &Service{rooms: rooms, beds: beds, patients: patients}
}

// RoomAttrs carries the mutable attributes of a room for updates.
type RoomAttrs struct {
	RoomNumber string
	Ward       string
	Floor      string
	RoomType   string
}

// ListRooms returns rooms matching the given filters.  Ward filters by
// exact match unless empty or the sentinel "All"; search matches
// case-insensitively against room number, ward, room type or any contained
// bed number.  The list is recomputed on every call.  A store failure on
// this read path degrades to an empty list so callers can still render,
// rather than propagating.
func (s *Service) ListRooms(ctx context.Context, ward, search string) ([]model.Room, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		log.Printf("occupancy: list rooms failed: %v", err)
		return []model.Room{}, nil
	}
	return FilterRooms(rooms, ward, search), nil
}

// GetRoom returns a single room with its beds.
func (s *Service) GetRoom(ctx context.Context, id int64) (*model.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

// CreateRoom stores a new room.  Seed beds default to Available and never
// carry patient data; a patient reaches a bed only through AssignPatient.
func (s *Service) CreateRoom(ctx context.Context, room *model.Room) error {
	for i := range room.Beds {
		if room.Beds[i].Status == "" {
			room.Beds[i].Status = model.BedAvailable
		}
		if _, err := model.ParseBedStatus(string(room.Beds[i].Status)); err != nil {
			return err
		}
		room.Beds[i].Patient = nil
		room.Beds[i].AdmissionDate = nil
		room.Beds[i].Notes = nil
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

// UpdateRoom replaces a room's attributes and returns the updated room.
// The existing bed collection is preserved.
func (s *Service) UpdateRoom(ctx context.Context, id int64, attrs RoomAttrs) (*model.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	room.RoomNumber = attrs.RoomNumber
	room.Ward = attrs.Ward
	room.Floor = attrs.Floor
	room.RoomType = attrs.RoomType
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}
	return s.rooms.GetByID(ctx, id)
}

// DeleteRoom removes a room and its beds.  It refuses with ErrRoomOccupied
// while any contained bed is occupied; this is the one cross-entity guard
// enforced before delegating deletion to the store.
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if room.HasOccupiedBeds() {
		return ErrRoomOccupied
	}
	return s.rooms.Delete(ctx, id)
}

// AssignPatient admits a patient to the bed addressed by (roomID,
// bedNumber).  The bed must not already be occupied; the check is enforced
// again by the store's conditional write, so UI-side filtering is never
// trusted.  The patient must exist, be active and not occupy another bed.
// On success the updated room is returned, so the mutation is visible to
// the caller's next read.
func (s *Service) AssignPatient(ctx context.Context, roomID int64, bedNumber string, a model.Assignment) (*model.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	bed := room.Bed(bedNumber)
	if bed == nil {
		return nil, repository.ErrBedNotFound
	}
	if bed.Occupied() {
		return nil, repository.ErrBedOccupied
	}

	patient, err := s.patients.GetPatient(ctx, a.PatientID)
	if err != nil {
		return nil, err
	}
	if !patient.Admittable() {
		return nil, ErrPatientInactive
	}
	if _, err := s.beds.FindByPatient(ctx, a.PatientID); err == nil {
		return nil, ErrPatientAdmitted
	} else if err != repository.ErrBedNotFound {
		return nil, fmt.Errorf("check patient admission: %w", err)
	}

	if a.PatientName == "" {
		a.PatientName = patient.DisplayName()
	}
	if a.AdmissionDate.IsZero() {
		a.AdmissionDate = time.Now().UTC()
	}
	if err := s.beds.AssignIfVacant(ctx, bed.ID, a); err != nil {
		return nil, err
	}
	return s.rooms.GetByID(ctx, roomID)
}

// UnassignPatient discharges the bed addressed by (roomID, bedNumber): the
// bed returns to Available with patient id, name, admission date and notes
// all cleared.  Discharging an already available bed succeeds as a no-op,
// which keeps retries after a lost response harmless.
func (s *Service) UnassignPatient(ctx context.Context, roomID int64, bedNumber string) (*model.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	bed := room.Bed(bedNumber)
	if bed == nil {
		return nil, repository.ErrBedNotFound
	}
	if err := s.beds.Clear(ctx, bed.ID); err != nil {
		return nil, fmt.Errorf("discharge bed: %w", err)
	}
	return s.rooms.GetByID(ctx, roomID)
}

// SetBedStatus moves a bed to the given status.  Any status outside the
// enumeration is rejected.  For every target except Occupied the patient
// fields are cleared together with the status change; a transition to
// Occupied through this path keeps whatever patient fields the bed holds.
// Notes are overwritten only when a value is provided.
func (s *Service) SetBedStatus(ctx context.Context, roomID int64, bedNumber, status string, notes *string) (*model.Room, error) {
	st, err := model.ParseBedStatus(status)
	if err != nil {
		return nil, err
	}
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	bed := room.Bed(bedNumber)
	if bed == nil {
		return nil, repository.ErrBedNotFound
	}
	if err := s.beds.SetStatus(ctx, bed.ID, st, notes); err != nil {
		return nil, fmt.Errorf("set bed status: %w", err)
	}
	return s.rooms.GetByID(ctx, roomID)
}

// BedsByStatus returns a flat, room-annotated list of all beds in the given
// status.  Invalid statuses are rejected; store failures on this read path
// degrade to an empty list.
func (s *Service) BedsByStatus(ctx context.Context, status string) ([]model.BedPlacement, error) {
	st, err := model.ParseBedStatus(status)
	if err != nil {
		return nil, err
	}
	beds, err := s.beds.ListByStatus(ctx, st)
	if err != nil {
		log.Printf("occupancy: list beds by status failed: %v", err)
		return []model.BedPlacement{}, nil
	}
	if beds == nil {
		beds = []model.BedPlacement{}
	}
	return beds, nil
}

// AdmittablePatients returns active patients who are not currently assigned
// to any bed.  Store failures degrade to an empty list.
func (s *Service) AdmittablePatients(ctx context.Context) ([]model.Patient, error) {
	patients, err := s.patients.ListAdmittable(ctx)
	if err != nil {
		log.Printf("occupancy: list admittable patients failed: %v", err)
		return []model.Patient{}, nil
	}
	if patients == nil {
		patients = []model.Patient{}
	}
	return patients, nil
}
