package occupancy

import (
	"testing"

	"github.com/medicore/hospital-occupancy/internal/model"
)

func TestSummarize(t *testing.T) {
	rooms := []model.Room{
		{ID: 1, RoomNumber: "101", Ward: "ICU", Beds: []model.Bed{
			{Status: model.BedOccupied},
			{Status: model.BedAvailable},
		}},
		{ID: 2, RoomNumber: "102", Ward: "ICU", Beds: []model.Bed{
			{Status: model.BedMaintenance},
		}},
		{ID: 3, RoomNumber: "201", Ward: "Surgery", Beds: []model.Bed{
			{Status: model.BedOccupied},
		}},
	}

	sum := Summarize(rooms)
	if sum.TotalRooms != 3 || sum.TotalBeds != 4 {
		t.Errorf("totals = %d rooms / %d beds, want 3 / 4", sum.TotalRooms, sum.TotalBeds)
	}
	if sum.OccupiedBeds != 2 || sum.AvailableBeds != 1 {
		t.Errorf("occupied=%d available=%d, want 2 / 1", sum.OccupiedBeds, sum.AvailableBeds)
	}
	if sum.OccupancyRate != 50 {
		t.Errorf("occupancy rate = %v, want 50", sum.OccupancyRate)
	}

	if len(sum.ByWard) != 2 {
		t.Fatalf("by ward = %+v, want 2 entries", sum.ByWard)
	}
	// Sorted by ward name.
	if sum.ByWard[0].Ward != "ICU" || sum.ByWard[0].TotalBeds != 3 || sum.ByWard[0].OccupiedBeds != 1 {
		t.Errorf("ICU ward stats = %+v", sum.ByWard[0])
	}
	if sum.ByWard[1].Ward != "Surgery" || sum.ByWard[1].OccupiedBeds != 1 {
		t.Errorf("Surgery ward stats = %+v", sum.ByWard[1])
	}

	if len(sum.ByRoom) != 3 {
		t.Fatalf("by room = %+v, want 3 entries", sum.ByRoom)
	}
	// Sorted by room number, one entry per room with its own rate.
	if sum.ByRoom[0].RoomNumber != "101" || sum.ByRoom[0].OccupiedBeds != 1 || sum.ByRoom[0].OccupancyRate != 50 {
		t.Errorf("room 101 stats = %+v", sum.ByRoom[0])
	}
	if sum.ByRoom[1].RoomNumber != "102" || sum.ByRoom[1].OccupancyRate != 0 {
		t.Errorf("room 102 stats = %+v", sum.ByRoom[1])
	}
	if sum.ByRoom[2].RoomNumber != "201" || sum.ByRoom[2].OccupancyRate != 100 {
		t.Errorf("room 201 stats = %+v", sum.ByRoom[2])
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	if sum.TotalBeds != 0 || sum.OccupancyRate != 0 {
		t.Errorf("empty summary = %+v", sum)
	}
}

func TestSummarizeZeroBedRoom(t *testing.T) {
	sum := Summarize([]model.Room{{ID: 1, RoomNumber: "301", Ward: "ICU"}})
	if sum.TotalRooms != 1 || sum.TotalBeds != 0 || sum.OccupancyRate != 0 {
		t.Errorf("zero-bed summary = %+v", sum)
	}
	if len(sum.ByRoom) != 1 || sum.ByRoom[0].OccupancyRate != 0 {
		t.Errorf("zero-bed room stats = %+v", sum.ByRoom)
	}
}
