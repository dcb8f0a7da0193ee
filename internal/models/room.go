package models

// Room represents a teaching space. Shared rooms may host overlapping
// placements (e.g. gymnasium halves); exclusive rooms may not.
type Room struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Shared       bool            `json:"shared"`
	Availability AvailabilityMap `json:"-"`
}
