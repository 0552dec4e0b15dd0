package occupancy

import (
	"strings"

	"github.com/medicore/hospital-occupancy/internal/model"
)

// WardAll is the sentinel ward value meaning "no ward filter".
const WardAll = "All"

// FilterRooms narrows a room list by ward and free-text search.  The ward
// filter is an exact match, skipped for the empty string and the WardAll
// sentinel.  The search text matches case-insensitively as a substring of
// the room number, ward, room type or any contained bed's number; those
// four are OR'd together and the result is AND'd with the ward filter.
func FilterRooms(rooms []model.Room, ward, search string) []model.Room {
	result := make([]model.Room, 0, len(rooms))
	query := strings.ToLower(strings.TrimSpace(search))
	for _, rm := range rooms {
		if ward != "" && ward != WardAll && rm.Ward != ward {
			continue
		}
		if query != "" && !roomMatches(&rm, query) {
			continue
		}
		result = append(result, rm)
	}
	return result
}

func roomMatches(rm *model.Room, query string) bool {
	if strings.Contains(strings.ToLower(rm.RoomNumber), query) ||
		strings.Contains(strings.ToLower(rm.Ward), query) ||
		strings.Contains(strings.ToLower(rm.RoomType), query) {
		return true
	}
	for i := range rm.Beds {
		if strings.Contains(strings.ToLower(rm.Beds[i].BedNumber), query) {
			return true
		}
	}
	return false
}

// Wards returns the distinct ward names present in the room list, prefixed
// with the WardAll sentinel, in first-seen order.  The UI renders this as
// the ward selector.
func Wards(rooms []model.Room) []string {
	seen := map[string]bool{}
	result := []string{WardAll}
	for _, rm := range rooms {
		if !seen[rm.Ward] {
			seen[rm.Ward] = true
			result = append(result, rm.Ward)
		}
	}
	return result
}
