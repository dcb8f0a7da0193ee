package models

// Class represents a student group belonging to a grade.
type Class struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	GradeID      string          `json:"grade_id"`
	Availability AvailabilityMap `json:"-"`
}

// Grade represents a year level grouping classes.
type Grade struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
