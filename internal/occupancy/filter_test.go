package occupancy

import (
	"testing"

	"github.com/medicore/hospital-occupancy/internal/model"
)

func sampleRooms() []model.Room {
	return []model.Room{
		{ID: 1, RoomNumber: "101", Ward: "ICU", RoomType: "Isolation", Beds: []model.Bed{{BedNumber: "B-101-1"}}},
		{ID: 2, RoomNumber: "102", Ward: "ICU", RoomType: "General", Beds: []model.Bed{{BedNumber: "B-102-1"}, {BedNumber: "B-102-2"}}},
		{ID: 3, RoomNumber: "201", Ward: "Surgery", RoomType: "General", Beds: []model.Bed{{BedNumber: "S-201-1"}}},
	}
}

func roomIDs(rooms []model.Room) []int64 {
	ids := make([]int64, len(rooms))
	for i, rm := range rooms {
		ids[i] = rm.ID
	}
	return ids
}

func TestFilterRoomsByWard(t *testing.T) {
	got := FilterRooms(sampleRooms(), "ICU", "")
	if len(got) != 2 {
		t.Fatalf("ICU rooms = %v, want 2", roomIDs(got))
	}
	for _, rm := range got {
		if rm.Ward != "ICU" {
			t.Errorf("room %d ward = %s", rm.ID, rm.Ward)
		}
	}
}

func TestFilterRoomsAllSentinel(t *testing.T) {
	if got := FilterRooms(sampleRooms(), WardAll, ""); len(got) != 3 {
		t.Errorf("All sentinel filtered rooms: %v", roomIDs(got))
	}
	if got := FilterRooms(sampleRooms(), "", ""); len(got) != 3 {
		t.Errorf("empty ward filtered rooms: %v", roomIDs(got))
	}
}

func TestFilterRoomsSearch(t *testing.T) {
	// Case-insensitive, matches bed numbers too.
	if got := FilterRooms(sampleRooms(), "", "b-10"); len(got) != 2 {
		t.Errorf("search b-10 = %v, want rooms 1 and 2", roomIDs(got))
	}
	if got := FilterRooms(sampleRooms(), "", "isolation"); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("search isolation = %v, want room 1", roomIDs(got))
	}
	if got := FilterRooms(sampleRooms(), "", "surg"); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("search surg = %v, want room 3", roomIDs(got))
	}
	if got := FilterRooms(sampleRooms(), "", "zzz"); len(got) != 0 {
		t.Errorf("search zzz = %v, want none", roomIDs(got))
	}
}

func TestFilterRoomsWardAndSearchCombine(t *testing.T) {
	got := FilterRooms(sampleRooms(), "ICU", "B-102")
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("combined filter = %v, want room 2", roomIDs(got))
	}
}

func TestWards(t *testing.T) {
	got := Wards(sampleRooms())
	want := []string{"All", "ICU", "Surgery"}
	if len(got) != len(want) {
		t.Fatalf("wards = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("wards = %v, want %v", got, want)
		}
	}
}
