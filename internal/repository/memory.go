package repository

import (
	"context"
	"sync"

	"github.com/medicore/hospital-occupancy/internal/model"
)

// MemoryStore is an in-memory implementation of the room, bed and patient
// stores.  It mirrors the behavior of the MySQL repositories closely enough
// to back the occupancy service in tests and local development without a
// database.  All reads return deep copies so callers can never mutate the
// store's internal state directly.
type MemoryStore struct {
	mu       sync.Mutex
	rooms    map[int64]*model.Room
	patients map[int64]*model.Patient
	nextRoom int64
	nextBed  int64
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:    make(map[int64]*model.Room),
		patients: make(map[int64]*model.Patient),
		nextRoom: 1,
		nextBed:  1,
	}
}

// SeedPatient inserts or replaces a patient record.
func (m *MemoryStore) SeedPatient(p model.Patient) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := p
	m.patients[p.ID] = &cp
}

// List returns every room with its beds.
func (m *MemoryStore) List(_ context.Context) ([]model.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.Room, 0, len(m.rooms))
	for _, rm := range m.rooms {
		result = append(result, *copyRoom(rm))
	}
	return result, nil
}

// GetByID returns one room with its beds.
func (m *MemoryStore) GetByID(_ context.Context, id int64) (*model.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rm, ok := m.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return copyRoom(rm), nil
}

// Create stores a new room and assigns ids to it and its seed beds.
func (m *MemoryStore) Create(_ context.Context, room *model.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	room.ID = m.nextRoom
	m.nextRoom++
	for i := range room.Beds {
		room.Beds[i].ID = m.nextBed
		m.nextBed++
		room.Beds[i].RoomID = room.ID
		if room.Beds[i].Status == "" {
			room.Beds[i].Status = model.BedAvailable
		}
	}
	m.rooms[room.ID] = copyRoom(room)
	return nil
}

// Update replaces a room's attributes while keeping its bed collection.
func (m *MemoryStore) Update(_ context.Context, room *model.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rooms[room.ID]
	if !ok {
		return ErrRoomNotFound
	}
	cur.RoomNumber = room.RoomNumber
	cur.Ward = room.Ward
	cur.Floor = room.Floor
	cur.RoomType = room.RoomType
	return nil
}

// Delete removes a room and the beds it owns.
func (m *MemoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[id]; !ok {
		return ErrRoomNotFound
	}
	delete(m.rooms, id)
	return nil
}

// AssignIfVacant mirrors the conditional UPDATE of the MySQL store: the
// occupied check and the write happen under one lock.
func (m *MemoryStore) AssignIfVacant(_ context.Context, bedID int64, a model.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bed := m.bedByID(bedID)
	if bed == nil {
		return ErrBedNotFound
	}
	if bed.Status == model.BedOccupied {
		return ErrBedOccupied
	}
	bed.Status = model.BedOccupied
	bed.Patient = &model.PatientRef{ID: a.PatientID, DisplayName: a.PatientName}
	date := a.AdmissionDate
	bed.AdmissionDate = &date
	bed.Notes = copyStr(a.Notes)
	return nil
}

// Clear discharges a bed regardless of its current status.
func (m *MemoryStore) Clear(_ context.Context, bedID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bed := m.bedByID(bedID)
	if bed == nil {
		return ErrBedNotFound
	}
	bed.ClearAssignment()
	return nil
}

// SetStatus applies a status change with the same field semantics as the
// MySQL store: patient fields are cleared unless the target is Occupied,
// and notes are only touched when a value is provided.
func (m *MemoryStore) SetStatus(_ context.Context, bedID int64, status model.BedStatus, notes *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bed := m.bedByID(bedID)
	if bed == nil {
		return ErrBedNotFound
	}
	bed.Status = status
	if notes != nil {
		bed.Notes = copyStr(notes)
	}
	if status != model.BedOccupied {
		bed.Patient = nil
		bed.AdmissionDate = nil
	}
	return nil
}

// ListByStatus returns all beds in the given status with room annotations.
func (m *MemoryStore) ListByStatus(_ context.Context, status model.BedStatus) ([]model.BedPlacement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.BedPlacement
	for _, rm := range m.rooms {
		for i := range rm.Beds {
			if rm.Beds[i].Status != status {
				continue
			}
			result = append(result, model.BedPlacement{
				Bed:        *copyBed(&rm.Beds[i]),
				RoomNumber: rm.RoomNumber,
				Ward:       rm.Ward,
				Floor:      rm.Floor,
				RoomType:   rm.RoomType,
			})
		}
	}
	return result, nil
}

// FindByPatient returns the bed the patient occupies, if any.
func (m *MemoryStore) FindByPatient(_ context.Context, patientID int64) (*model.Bed, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rm := range m.rooms {
		for i := range rm.Beds {
			if rm.Beds[i].Patient != nil && rm.Beds[i].Patient.ID == patientID {
				return copyBed(&rm.Beds[i]), nil
			}
		}
	}
	return nil, ErrBedNotFound
}

// GetPatient returns a seeded patient.
func (m *MemoryStore) GetPatient(_ context.Context, id int64) (*model.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

// ListAdmittable returns active patients that are not assigned to any bed.
func (m *MemoryStore) ListAdmittable(_ context.Context) ([]model.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	admitted := map[int64]bool{}
	for _, rm := range m.rooms {
		for i := range rm.Beds {
			if rm.Beds[i].Patient != nil {
				admitted[rm.Beds[i].Patient.ID] = true
			}
		}
	}
	var result []model.Patient
	for _, p := range m.patients {
		if p.Admittable() && !admitted[p.ID] {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *MemoryStore) bedByID(id int64) *model.Bed {
	for _, rm := range m.rooms {
		for i := range rm.Beds {
			if rm.Beds[i].ID == id {
				return &rm.Beds[i]
			}
		}
	}
	return nil
}

func copyRoom(rm *model.Room) *model.Room {
	cp := *rm
	cp.Beds = make([]model.Bed, len(rm.Beds))
	for i := range rm.Beds {
		cp.Beds[i] = *copyBed(&rm.Beds[i])
	}
	return &cp
}

func copyBed(b *model.Bed) *model.Bed {
	cp := *b
	if b.Patient != nil {
		ref := *b.Patient
		cp.Patient = &ref
	}
	if b.AdmissionDate != nil {
		t := *b.AdmissionDate
		cp.AdmissionDate = &t
	}
	cp.Notes = copyStr(b.Notes)
	return &cp
}

func copyStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
