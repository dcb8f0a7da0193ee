package models

import "sort"

// BlockKind distinguishes single-period demand from atomic multi-period demand.
type BlockKind string

const (
	BlockNormal      BlockKind = "normal"
	BlockConsecutive BlockKind = "consecutive"
)

// TeacherRole marks a teacher's involvement in a lesson block.
type TeacherRole string

const (
	RoleMain TeacherRole = "main"
	RoleSub  TeacherRole = "sub"
)

// BlockTeacher pairs a teacher with their role in a block.
type BlockTeacher struct {
	TeacherID string      `json:"teacher_id"`
	Role      TeacherRole `json:"role"`
}

// LessonBlock ("koma") is the unit of scheduling demand: one subject taught to
// one or more classes by one or more teachers in zero or more rooms. A
// consecutive block occupies Length adjacent periods of a single day as one
// atomic placement.
type LessonBlock struct {
	ID        string         `json:"id"`
	SubjectID string         `json:"subject_id"`
	Kind      BlockKind      `json:"kind"`
	Length    int            `json:"length"`
	ClassIDs  []string       `json:"class_ids"`
	Teachers  []BlockTeacher `json:"teachers"`
	RoomIDs   []string       `json:"room_ids"`
}

// Span returns the number of adjacent periods the block occupies.
func (b LessonBlock) Span() int {
	if b.Kind == BlockConsecutive && b.Length > 1 {
		return b.Length
	}
	return 1
}

// TeacherIDs returns the participating teacher ids in stable order.
func (b LessonBlock) TeacherIDs() []string {
	ids := make([]string, 0, len(b.Teachers))
	for _, t := range b.Teachers {
		ids = append(ids, t.TeacherID)
	}
	sort.Strings(ids)
	return ids
}

// ParticipantCount counts the entities the block ties up, used by the solver's
// largest-participant tie-break.
func (b LessonBlock) ParticipantCount() int {
	return len(b.ClassIDs) + len(b.Teachers) + len(b.RoomIDs)
}

// Placement assigns a lesson block occurrence to a starting slot. A
// consecutive block covers At.Period through At.Period+Span()-1.
type Placement struct {
	BlockID string `json:"block_id"`
	At      Slot   `json:"at"`
}
