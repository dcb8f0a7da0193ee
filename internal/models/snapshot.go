package models

import "fmt"

// Snapshot is the read-only domain view an engine invocation operates on. It
// is supplied by the host per request and never mutated by the engine.
type Snapshot struct {
	Calendar Calendar
	Subjects map[string]Subject
	Teachers map[string]Teacher
	Rooms    map[string]Room
	Classes  map[string]Class
	Grades   map[string]Grade
}

// NewSnapshot indexes the reference data and rejects calendars outside the
// supported grid.
func NewSnapshot(cal Calendar, subjects []Subject, teachers []Teacher, rooms []Room, classes []Class, grades []Grade) (*Snapshot, error) {
	if !cal.Valid() {
		return nil, fmt.Errorf("calendar out of bounds: %dx%d (max %dx%d)",
			cal.DaysPerWeek, cal.PeriodsPerDay, MaxDaysPerWeek, MaxPeriodsPerDay)
	}
	snap := &Snapshot{
		Calendar: cal,
		Subjects: make(map[string]Subject, len(subjects)),
		Teachers: make(map[string]Teacher, len(teachers)),
		Rooms:    make(map[string]Room, len(rooms)),
		Classes:  make(map[string]Class, len(classes)),
		Grades:   make(map[string]Grade, len(grades)),
	}
	for _, s := range subjects {
		snap.Subjects[s.ID] = s
	}
	for _, t := range teachers {
		snap.Teachers[t.ID] = t
	}
	for _, r := range rooms {
		snap.Rooms[r.ID] = r
	}
	for _, c := range classes {
		if c.GradeID != "" {
			if _, ok := snap.Grades[c.GradeID]; !ok {
				found := false
				for _, g := range grades {
					if g.ID == c.GradeID {
						found = true
						break
					}
				}
				if !found {
					return nil, fmt.Errorf("class %s references unknown grade %s", c.ID, c.GradeID)
				}
			}
		}
		snap.Classes[c.ID] = c
	}
	for _, g := range grades {
		snap.Grades[g.ID] = g
	}
	return snap, nil
}

// ValidateBlocks checks every reference inside the given lesson blocks against
// the snapshot and the calendar shape.
func (s *Snapshot) ValidateBlocks(blocks []LessonBlock) error {
	seen := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		if b.ID == "" {
			return fmt.Errorf("lesson block without id")
		}
		if seen[b.ID] {
			return fmt.Errorf("duplicate lesson block id %s", b.ID)
		}
		seen[b.ID] = true
		if _, ok := s.Subjects[b.SubjectID]; !ok {
			return fmt.Errorf("block %s references unknown subject %s", b.ID, b.SubjectID)
		}
		if b.Span() > s.Calendar.PeriodsPerDay {
			return fmt.Errorf("block %s spans %d periods but the day has %d", b.ID, b.Span(), s.Calendar.PeriodsPerDay)
		}
		if len(b.ClassIDs) == 0 {
			return fmt.Errorf("block %s has no participating class", b.ID)
		}
		for _, classID := range b.ClassIDs {
			if _, ok := s.Classes[classID]; !ok {
				return fmt.Errorf("block %s references unknown class %s", b.ID, classID)
			}
		}
		for _, bt := range b.Teachers {
			if _, ok := s.Teachers[bt.TeacherID]; !ok {
				return fmt.Errorf("block %s references unknown teacher %s", b.ID, bt.TeacherID)
			}
		}
		for _, roomID := range b.RoomIDs {
			if _, ok := s.Rooms[roomID]; !ok {
				return fmt.Errorf("block %s references unknown room %s", b.ID, roomID)
			}
		}
	}
	return nil
}

// GradeOf returns the grade id of a class, empty when unknown.
func (s *Snapshot) GradeOf(classID string) string {
	if c, ok := s.Classes[classID]; ok {
		return c.GradeID
	}
	return ""
}
