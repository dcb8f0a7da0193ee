package models

// MaxDaysPerWeek and MaxPeriodsPerDay bound the weekly grid.
const (
	MaxDaysPerWeek   = 6
	MaxPeriodsPerDay = 8
)

// Slot is a (day, period) coordinate in the weekly grid. Both indexes are zero-based.
type Slot struct {
	Day    int `json:"day"`
	Period int `json:"period"`
}

// Before orders slots row-major for deterministic iteration.
func (s Slot) Before(other Slot) bool {
	if s.Day != other.Day {
		return s.Day < other.Day
	}
	return s.Period < other.Period
}

// Calendar describes the shape of the teaching week.
type Calendar struct {
	DaysPerWeek   int `json:"daysPerWeek"`
	PeriodsPerDay int `json:"periodsPerDay"`
}

// Valid reports whether the calendar dimensions are inside supported bounds.
func (c Calendar) Valid() bool {
	return c.DaysPerWeek >= 1 && c.DaysPerWeek <= MaxDaysPerWeek &&
		c.PeriodsPerDay >= 1 && c.PeriodsPerDay <= MaxPeriodsPerDay
}

// Contains reports whether the slot lies inside the grid.
func (c Calendar) Contains(s Slot) bool {
	return s.Day >= 0 && s.Day < c.DaysPerWeek && s.Period >= 0 && s.Period < c.PeriodsPerDay
}

// Fits reports whether a span of adjacent periods starting at s stays inside one day.
func (c Calendar) Fits(s Slot, span int) bool {
	return c.Contains(s) && span >= 1 && s.Period+span <= c.PeriodsPerDay
}

// SlotCount returns the total number of slots in the week.
func (c Calendar) SlotCount() int {
	return c.DaysPerWeek * c.PeriodsPerDay
}

// Slots enumerates every slot in row-major order.
func (c Calendar) Slots() []Slot {
	slots := make([]Slot, 0, c.SlotCount())
	for day := 0; day < c.DaysPerWeek; day++ {
		for period := 0; period < c.PeriodsPerDay; period++ {
			slots = append(slots, Slot{Day: day, Period: period})
		}
	}
	return slots
}
