package models

// AvailabilityState classifies a slot in an entity's weekly availability map.
type AvailabilityState string

const (
	StateAvailable   AvailabilityState = "available"
	StateUnavailable AvailabilityState = "unavailable"
	StatePreferred   AvailabilityState = "preferred"
)

// AvailabilityMap records per-slot availability. Absent slots are available.
type AvailabilityMap map[Slot]AvailabilityState

// State returns the recorded state for the slot, defaulting to available.
func (m AvailabilityMap) State(s Slot) AvailabilityState {
	if m == nil {
		return StateAvailable
	}
	if state, ok := m[s]; ok {
		return state
	}
	return StateAvailable
}

// CanUse reports whether the entity may be scheduled at the slot.
func (m AvailabilityMap) CanUse(s Slot) bool {
	return m.State(s) != StateUnavailable
}

// Prefers reports whether the entity marked the slot as preferred.
func (m AvailabilityMap) Prefers(s Slot) bool {
	return m.State(s) == StatePreferred
}

// Block marks a slot unavailable, allocating the map on first use.
func (m *AvailabilityMap) Block(s Slot) {
	if *m == nil {
		*m = make(AvailabilityMap)
	}
	(*m)[s] = StateUnavailable
}
