package occupancy

import (
	"context"
	"log"
	"sort"

	"github.com/medicore/hospital-occupancy/internal/model"
)

// WardOccupancy summarizes bed usage for one ward.
type WardOccupancy struct {
	Ward         string `json:"ward"`
	TotalBeds    int    `json:"total_beds"`
	OccupiedBeds int    `json:"occupied_beds"`
}

// RoomOccupancy summarizes bed usage for one room.
type RoomOccupancy struct {
	RoomID        int64   `json:"room_id"`
	RoomNumber    string  `json:"room_number"`
	Ward          string  `json:"ward"`
	TotalBeds     int     `json:"total_beds"`
	OccupiedBeds  int     `json:"occupied_beds"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// Summary is the facility-wide occupancy snapshot rendered on the
// dashboard: total and per-status bed counts plus the occupancy rate
// (occupied over total) as a percentage, broken down per ward and per
// room.
type Summary struct {
	TotalRooms    int             `json:"total_rooms"`
	TotalBeds     int             `json:"total_beds"`
	OccupiedBeds  int             `json:"occupied_beds"`
	AvailableBeds int             `json:"available_beds"`
	OccupancyRate float64         `json:"occupancy_rate"`
	ByWard        []WardOccupancy `json:"by_ward"`
	ByRoom        []RoomOccupancy `json:"by_room"`
}

// Summarize computes the occupancy snapshot for a room list.
func Summarize(rooms []model.Room) Summary {
	sum := Summary{TotalRooms: len(rooms)}
	byWard := map[string]*WardOccupancy{}
	for i := range rooms {
		occupied, total := rooms[i].Occupancy()
		sum.TotalBeds += total
		sum.OccupiedBeds += occupied
		for j := range rooms[i].Beds {
			if rooms[i].Beds[j].Status == model.BedAvailable {
				sum.AvailableBeds++
			}
		}
		w := byWard[rooms[i].Ward]
		if w == nil {
			w = &WardOccupancy{Ward: rooms[i].Ward}
			byWard[rooms[i].Ward] = w
		}
		w.TotalBeds += total
		w.OccupiedBeds += occupied

		ro := RoomOccupancy{
			RoomID:       rooms[i].ID,
			RoomNumber:   rooms[i].RoomNumber,
			Ward:         rooms[i].Ward,
			TotalBeds:    total,
			OccupiedBeds: occupied,
		}
		if total > 0 {
			ro.OccupancyRate = float64(occupied) / float64(total) * 100
		}
		sum.ByRoom = append(sum.ByRoom, ro)
	}
	if sum.TotalBeds > 0 {
		sum.OccupancyRate = float64(sum.OccupiedBeds) / float64(sum.TotalBeds) * 100
	}
	sum.ByWard = make([]WardOccupancy, 0, len(byWard))
	for _, w := range byWard {
		sum.ByWard = append(sum.ByWard, *w)
	}
	sort.Slice(sum.ByWard, func(i, j int) bool { return sum.ByWard[i].Ward < sum.ByWard[j].Ward })
	sort.Slice(sum.ByRoom, func(i, j int) bool { return sum.ByRoom[i].RoomNumber < sum.ByRoom[j].RoomNumber })
	return sum
}

// Summary returns the current facility snapshot.  Like the other read
// paths, a store failure degrades to an empty summary instead of an error.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		log.Printf("occupancy: summary failed: %v", err)
		return Summary{ByWard: []WardOccupancy{}, ByRoom: []RoomOccupancy{}}, nil
	}
	return Summarize(rooms), nil
}
