package dto

import "github.com/noah-isme/jikanwari-engine/internal/models"

// BlockTeacherPayload pairs a teacher with their role in a lesson block.
type BlockTeacherPayload struct {
	TeacherID string `json:"teacherId" validate:"required"`
	Role      string `json:"role" validate:"omitempty,oneof=main sub"`
}

// LessonBlockPayload is one unit of scheduling demand.
type LessonBlockPayload struct {
	ID        string                `json:"id" validate:"required"`
	SubjectID string                `json:"subjectId" validate:"required"`
	Kind      string                `json:"kind" validate:"omitempty,oneof=normal consecutive"`
	Length    int                   `json:"length" validate:"omitempty,min=1,max=8"`
	ClassIDs  []string              `json:"classIds" validate:"required,min=1"`
	Teachers  []BlockTeacherPayload `json:"teachers" validate:"omitempty,dive"`
	RoomIDs   []string              `json:"roomIds"`
}

// ToModel converts the wire block.
func (p LessonBlockPayload) ToModel() models.LessonBlock {
	kind := models.BlockKind(p.Kind)
	if kind == "" {
		kind = models.BlockNormal
	}
	length := p.Length
	if length == 0 {
		length = 1
	}
	teachers := make([]models.BlockTeacher, 0, len(p.Teachers))
	for _, t := range p.Teachers {
		role := models.TeacherRole(t.Role)
		if role == "" {
			role = models.RoleMain
		}
		teachers = append(teachers, models.BlockTeacher{TeacherID: t.TeacherID, Role: role})
	}
	return models.LessonBlock{
		ID:        p.ID,
		SubjectID: p.SubjectID,
		Kind:      kind,
		Length:    length,
		ClassIDs:  p.ClassIDs,
		Teachers:  teachers,
		RoomIDs:   p.RoomIDs,
	}
}

// ConstraintRulePayload configures one rule instance.
type ConstraintRulePayload struct {
	Family    string        `json:"family" validate:"required"`
	Level     string        `json:"level" validate:"omitempty,oneof=hard soft"`
	Slots     []SlotPayload `json:"slots" validate:"omitempty,dive"`
	SubjectID string        `json:"subjectId"`
	MaxPerDay int           `json:"maxPerDay" validate:"omitempty,min=1"`
}

// ToModel converts the wire rule.
func (p ConstraintRulePayload) ToModel() models.ConstraintRule {
	slots := make([]models.Slot, 0, len(p.Slots))
	for _, s := range p.Slots {
		slots = append(slots, s.ToModel())
	}
	level := models.ConstraintLevel(p.Level)
	if level == "" {
		level = models.LevelHard
	}
	return models.ConstraintRule{
		Family:    models.ConstraintFamily(p.Family),
		Level:     level,
		Slots:     slots,
		SubjectID: p.SubjectID,
		MaxPerDay: p.MaxPerDay,
	}
}

// SoftWeightsPayload tunes the soft-penalty components.
type SoftWeightsPayload struct {
	TeacherLoadBalance  float64 `json:"teacherLoadBalance" validate:"min=0"`
	SubjectDistribution float64 `json:"subjectDistribution" validate:"min=0"`
	RoomUtilization     float64 `json:"roomUtilization" validate:"min=0"`
	ClassGapPenalty     float64 `json:"classGapPenalty" validate:"min=0"`
	PreferredSlotBonus  float64 `json:"preferredSlotBonus" validate:"min=0"`
}

// ToModel converts the wire weights.
func (p SoftWeightsPayload) ToModel() models.SoftWeights {
	return models.SoftWeights{
		TeacherLoadBalance:  p.TeacherLoadBalance,
		SubjectDistribution: p.SubjectDistribution,
		RoomUtilization:     p.RoomUtilization,
		ClassGap:            p.ClassGapPenalty,
		PreferredSlot:       p.PreferredSlotBonus,
	}
}

// SolveRequest instructs the solver to build ranked timetable candidates.
type SolveRequest struct {
	Snapshot    SnapshotPayload         `json:"snapshot" validate:"required"`
	Blocks      []LessonBlockPayload    `json:"lessonBlocks" validate:"required,min=1,dive"`
	Rules       []ConstraintRulePayload `json:"constraints" validate:"omitempty,dive"`
	TimeoutMs   int                     `json:"timeoutMs" validate:"min=0"`
	MaxPatterns int                     `json:"maxPatterns" validate:"min=0,max=64"`
	RandomSeed  int64                   `json:"randomSeed"`
	Weights     *SoftWeightsPayload     `json:"weights" validate:"omitempty"`
}

// PlacementPayload assigns a block occurrence to its starting slot.
type PlacementPayload struct {
	BlockID string `json:"blockId" validate:"required"`
	Day     int    `json:"day" validate:"min=0,max=5"`
	Period  int    `json:"period" validate:"min=0,max=7"`
}

// ToModel converts the wire placement.
func (p PlacementPayload) ToModel() models.Placement {
	return models.Placement{BlockID: p.BlockID, At: models.Slot{Day: p.Day, Period: p.Period}}
}

// FromPlacement converts a model placement for the wire.
func FromPlacement(p models.Placement) PlacementPayload {
	return PlacementPayload{BlockID: p.BlockID, Day: p.At.Day, Period: p.At.Period}
}

// TimetableCandidatePayload is one ranked hard-feasible timetable.
type TimetableCandidatePayload struct {
	Placements []PlacementPayload `json:"placements"`
	Penalty    float64            `json:"penalty"`
	Diversity  int                `json:"diversity"`
}

// SolveResponse returns the ranked candidate set and its anytime flags. The
// pattern set stays retrievable under PatternSetID until it expires.
type SolveResponse struct {
	PatternSetID string                      `json:"patternSetId"`
	Candidates   []TimetableCandidatePayload `json:"candidates"`
	TimedOut     bool                        `json:"timedOut"`
	Cancelled    bool                        `json:"cancelled"`
	Restarts     int                         `json:"restarts"`
}
