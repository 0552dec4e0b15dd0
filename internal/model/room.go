package model

import "time"

// Room is a container of beds within a ward.  The bed collection is owned
// by the room: beds are created with it and removed with it, never on their
// own.  Room numbers are unique across the hospital.
//
// Fields:
//
//	ID         - primary key assigned by the store.
//	RoomNumber - human-facing room number, unique hospital-wide.
//	Ward       - named wing or unit the room belongs to (e.g. "ICU").
//	Floor      - floor label; kept as a string so "B1" and "Ground" work.
//	RoomType   - descriptive type such as "General", "ICU" or "Private".
//	Beds       - ordered bed collection, embedded on every room read.
type Room struct {
	ID         int64     `json:"id"`
	RoomNumber string    `json:"room_number"`
	Ward       string    `json:"ward"`
	Floor      string    `json:"floor"`
	RoomType   string    `json:"room_type"`
	Beds       []Bed     `json:"beds"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Bed returns the bed with the given number, or nil when the room has no
// such bed.  Bed numbers are the public addressing key for all occupancy
// operations.
func (r *Room) Bed(number string) *Bed {
	for i := range r.Beds {
		if r.Beds[i].BedNumber == number {
			return &r.Beds[i]
		}
	}
	return nil
}

// HasOccupiedBeds reports whether any bed in the room is occupied.  Rooms
// with occupied beds cannot be deleted.
func (r *Room) HasOccupiedBeds() bool {
	for i := range r.Beds {
		if r.Beds[i].Occupied() {
			return true
		}
	}
	return false
}

// Occupancy returns the occupied and total bed counts for the room.
func (r *Room) Occupancy() (occupied, total int) {
	for i := range r.Beds {
		if r.Beds[i].Occupied() {
			occupied++
		}
	}
	return occupied, len(r.Beds)
}
