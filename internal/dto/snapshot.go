package dto

import "github.com/noah-isme/jikanwari-engine/internal/models"

// SlotPayload is a (day, period) coordinate on the wire.
type SlotPayload struct {
	Day    int `json:"day" validate:"min=0,max=5"`
	Period int `json:"period" validate:"min=0,max=7"`
}

// ToModel converts the wire slot.
func (p SlotPayload) ToModel() models.Slot {
	return models.Slot{Day: p.Day, Period: p.Period}
}

// AvailabilityEntry marks one slot of an entity's weekly availability map.
type AvailabilityEntry struct {
	Day    int    `json:"day" validate:"min=0,max=5"`
	Period int    `json:"period" validate:"min=0,max=7"`
	State  string `json:"state" validate:"required,oneof=available unavailable preferred"`
}

func toAvailability(entries []AvailabilityEntry) models.AvailabilityMap {
	if len(entries) == 0 {
		return nil
	}
	m := make(models.AvailabilityMap, len(entries))
	for _, e := range entries {
		m[models.Slot{Day: e.Day, Period: e.Period}] = models.AvailabilityState(e.State)
	}
	return m
}

// SubjectPayload mirrors models.Subject on the wire.
type SubjectPayload struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Color     string `json:"color"`
	Category  string `json:"category" validate:"omitempty,oneof=general reserve school_affair"`
}

// TeacherPayload mirrors models.Teacher on the wire.
type TeacherPayload struct {
	ID           string              `json:"id" validate:"required"`
	Name         string              `json:"name"`
	SubjectIDs   []string            `json:"subjectIds"`
	GradeIDs     []string            `json:"gradeIds"`
	Availability []AvailabilityEntry `json:"availability" validate:"omitempty,dive"`
}

// RoomPayload mirrors models.Room on the wire.
type RoomPayload struct {
	ID           string              `json:"id" validate:"required"`
	Name         string              `json:"name"`
	Shared       bool                `json:"shared"`
	Availability []AvailabilityEntry `json:"availability" validate:"omitempty,dive"`
}

// ClassPayload mirrors models.Class on the wire.
type ClassPayload struct {
	ID           string              `json:"id" validate:"required"`
	Name         string              `json:"name"`
	GradeID      string              `json:"gradeId"`
	Availability []AvailabilityEntry `json:"availability" validate:"omitempty,dive"`
}

// GradePayload mirrors models.Grade on the wire.
type GradePayload struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

// SnapshotPayload is the read-only domain snapshot supplied by the host on
// every engine call.
type SnapshotPayload struct {
	Calendar CalendarPayload  `json:"calendar" validate:"required"`
	Subjects []SubjectPayload `json:"subjects" validate:"omitempty,dive"`
	Teachers []TeacherPayload `json:"teachers" validate:"omitempty,dive"`
	Rooms    []RoomPayload    `json:"rooms" validate:"omitempty,dive"`
	Classes  []ClassPayload   `json:"classes" validate:"omitempty,dive"`
	Grades   []GradePayload   `json:"grades" validate:"omitempty,dive"`
}

// CalendarPayload bounds the weekly grid.
type CalendarPayload struct {
	DaysPerWeek   int `json:"daysPerWeek" validate:"required,min=1,max=6"`
	PeriodsPerDay int `json:"periodsPerDay" validate:"required,min=1,max=8"`
}

// ToModel builds and validates the indexed snapshot.
func (p SnapshotPayload) ToModel() (*models.Snapshot, error) {
	subjects := make([]models.Subject, 0, len(p.Subjects))
	for _, s := range p.Subjects {
		category := models.SubjectCategory(s.Category)
		if category == "" {
			category = models.SubjectGeneral
		}
		subjects = append(subjects, models.Subject{
			ID: s.ID, Name: s.Name, ShortName: s.ShortName, Color: s.Color, Category: category,
		})
	}
	teachers := make([]models.Teacher, 0, len(p.Teachers))
	for _, t := range p.Teachers {
		teachers = append(teachers, models.Teacher{
			ID: t.ID, Name: t.Name, SubjectIDs: t.SubjectIDs, GradeIDs: t.GradeIDs,
			Availability: toAvailability(t.Availability),
		})
	}
	rooms := make([]models.Room, 0, len(p.Rooms))
	for _, r := range p.Rooms {
		rooms = append(rooms, models.Room{
			ID: r.ID, Name: r.Name, Shared: r.Shared, Availability: toAvailability(r.Availability),
		})
	}
	classes := make([]models.Class, 0, len(p.Classes))
	for _, c := range p.Classes {
		classes = append(classes, models.Class{
			ID: c.ID, Name: c.Name, GradeID: c.GradeID, Availability: toAvailability(c.Availability),
		})
	}
	grades := make([]models.Grade, 0, len(p.Grades))
	for _, g := range p.Grades {
		grades = append(grades, models.Grade{ID: g.ID, Name: g.Name})
	}
	return models.NewSnapshot(models.Calendar{
		DaysPerWeek:   p.Calendar.DaysPerWeek,
		PeriodsPerDay: p.Calendar.PeriodsPerDay,
	}, subjects, teachers, rooms, classes, grades)
}
