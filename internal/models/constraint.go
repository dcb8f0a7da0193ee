package models

// ConstraintLevel separates rules that must hold from rules that cost penalty.
type ConstraintLevel string

const (
	LevelHard ConstraintLevel = "hard"
	LevelSoft ConstraintLevel = "soft"
)

// ConstraintFamily identifies a built-in constraint rule family.
type ConstraintFamily string

const (
	FamilyTeacherAvailability  ConstraintFamily = "teacher_availability"
	FamilyRoomConflict         ConstraintFamily = "room_conflict"
	FamilyClassConflict        ConstraintFamily = "class_conflict"
	FamilySchoolAffair         ConstraintFamily = "school_affair"
	FamilySubjectDistribution  ConstraintFamily = "subject_distribution"
	FamilyConsecutiveAdjacency ConstraintFamily = "consecutive_adjacency"
)

var knownFamilies = map[ConstraintFamily]bool{
	FamilyTeacherAvailability:  true,
	FamilyRoomConflict:         true,
	FamilyClassConflict:        true,
	FamilySchoolAffair:         true,
	FamilySubjectDistribution:  true,
	FamilyConsecutiveAdjacency: true,
}

// KnownFamily reports whether the family is one of the built-in rule families.
func KnownFamily(f ConstraintFamily) bool {
	return knownFamilies[f]
}

// ConstraintRule configures one rule instance. Slots parameterises
// school-affair exclusions; SubjectID and MaxPerDay parameterise
// subject-distribution limits.
type ConstraintRule struct {
	Family    ConstraintFamily `json:"family"`
	Level     ConstraintLevel  `json:"level"`
	Slots     []Slot           `json:"slots,omitempty"`
	SubjectID string           `json:"subject_id,omitempty"`
	MaxPerDay int              `json:"max_per_day,omitempty"`
}

// SoftWeights tunes the weighted soft-penalty components. Policy input, never
// hard-coded in the evaluator.
type SoftWeights struct {
	TeacherLoadBalance  float64 `json:"teacherLoadBalance"`
	SubjectDistribution float64 `json:"subjectDistribution"`
	RoomUtilization     float64 `json:"roomUtilization"`
	ClassGap            float64 `json:"classGapPenalty"`
	PreferredSlot       float64 `json:"preferredSlotBonus"`
}

// DefaultSoftWeights mirrors the tuning the host ships with.
func DefaultSoftWeights() SoftWeights {
	return SoftWeights{
		TeacherLoadBalance:  1.0,
		SubjectDistribution: 2.0,
		RoomUtilization:     0.5,
		ClassGap:            1.5,
		PreferredSlot:       0.5,
	}
}
