package dto

// FeatureWeightsPayload tunes the suggestion scoring features.
type FeatureWeightsPayload struct {
	SubjectMatch float64 `json:"subjectMatch" validate:"min=0"`
	Availability float64 `json:"availability" validate:"min=0"`
	CurrentLoad  float64 `json:"currentLoad" validate:"min=0"`
	Recency      float64 `json:"recency" validate:"min=0"`
	GradeMatch   float64 `json:"gradeMatch" validate:"min=0"`
}

// SubstituteRequest asks for ranked substitute teachers for a cancelled
// lesson occurrence.
type SubstituteRequest struct {
	Snapshot        SnapshotPayload        `json:"snapshot" validate:"required"`
	Blocks          []LessonBlockPayload   `json:"lessonBlocks" validate:"omitempty,dive"`
	Placements      []PlacementPayload     `json:"placements" validate:"omitempty,dive"`
	Day             int                    `json:"day" validate:"min=0,max=5"`
	Period          int                    `json:"period" validate:"min=0,max=7"`
	SubjectID       string                 `json:"subjectId" validate:"required"`
	ClassIDs        []string               `json:"classIds" validate:"omitempty"`
	AbsentTeacherID string                 `json:"absentTeacherId" validate:"required"`
	RecentCoverDays map[string]int         `json:"recentCoverDays"`
	Weights         *FeatureWeightsPayload `json:"weights" validate:"omitempty"`
	TopK            int                    `json:"topK" validate:"min=0,max=64"`
}

// SupervisorRequest asks for ranked exam supervisors for one exam slot.
type SupervisorRequest struct {
	Snapshot       SnapshotPayload        `json:"snapshot" validate:"required"`
	Blocks         []LessonBlockPayload   `json:"lessonBlocks" validate:"omitempty,dive"`
	Placements     []PlacementPayload     `json:"placements" validate:"omitempty,dive"`
	Day            int                    `json:"day" validate:"min=0,max=5"`
	Period         int                    `json:"period" validate:"min=0,max=7"`
	SubjectID      string                 `json:"subjectId" validate:"required"`
	AssignedCounts map[string]int         `json:"assignedCounts"`
	Weights        *FeatureWeightsPayload `json:"weights" validate:"omitempty"`
	TopK           int                    `json:"topK" validate:"min=0,max=64"`
}

// RescheduleRequest asks for ranked destination slots for a cancelled lesson.
type RescheduleRequest struct {
	Snapshot   SnapshotPayload         `json:"snapshot" validate:"required"`
	Blocks     []LessonBlockPayload    `json:"lessonBlocks" validate:"required,min=1,dive"`
	Rules      []ConstraintRulePayload `json:"constraints" validate:"omitempty,dive"`
	Placements []PlacementPayload      `json:"placements" validate:"omitempty,dive"`
	BlockID    string                  `json:"blockId" validate:"required"`
	FromDay    int                     `json:"fromDay" validate:"min=0,max=5"`
	FromPeriod int                     `json:"fromPeriod" validate:"min=0,max=7"`
	Weights    *SoftWeightsPayload     `json:"weights" validate:"omitempty"`
	TopK       int                     `json:"topK" validate:"min=0,max=64"`
}

// ScoredCandidatePayload is one ranked suggestion with its panel reasons.
type ScoredCandidatePayload struct {
	ID       string   `json:"id"`
	Score    float64  `json:"score"`
	Feasible bool     `json:"feasible"`
	Reasons  []string `json:"reasons"`
}

// SuggestionResponse wraps a ranked suggestion list.
type SuggestionResponse struct {
	Candidates []ScoredCandidatePayload `json:"candidates"`
}
