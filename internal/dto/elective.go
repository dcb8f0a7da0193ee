package dto

// ElectiveStudentPayload carries one student's ranked subject choices.
type ElectiveStudentPayload struct {
	ID      string   `json:"id" validate:"required"`
	Choices []string `json:"choices" validate:"required,min=1"`
}

// ElectiveCapacityPayload caps one elective subject's group size.
type ElectiveCapacityPayload struct {
	SubjectID string `json:"subjectId" validate:"required"`
	Capacity  int    `json:"capacity" validate:"min=0"`
	TeacherID string `json:"teacherId"`
}

// ElectiveGroupingRequest asks for an elective partition.
type ElectiveGroupingRequest struct {
	Students    []ElectiveStudentPayload  `json:"students" validate:"required,min=1,dive"`
	Capacities  []ElectiveCapacityPayload `json:"subjectCapacities" validate:"required,min=1,dive"`
	PeriodCount int                       `json:"periodCount" validate:"required,min=1"`
}

// ElectiveGroupPayload is one formed group.
type ElectiveGroupPayload struct {
	SubjectID  string   `json:"subjectId"`
	Period     int      `json:"period"`
	TeacherID  string   `json:"teacherId,omitempty"`
	StudentIDs []string `json:"studentIds"`
}

// ElectiveGroupingResponse is the grouping outcome.
type ElectiveGroupingResponse struct {
	Groups       []ElectiveGroupPayload `json:"groups"`
	Unassigned   []string               `json:"unassigned"`
	Satisfaction float64                `json:"satisfaction"`
}
