package constraint

import (
	"fmt"
	"sort"

	"github.com/noah-isme/jikanwari-engine/internal/models"
)

// softLevelUnit is the penalty charged per violation of a rule family that was
// configured soft instead of hard.
const softLevelUnit = 1.0

// subjectLimit caps daily occurrences for one subject (or all, when the rule
// carries no subject id).
type subjectLimit struct {
	maxPerDay int
	level     models.ConstraintLevel
}

// Evaluator checks placements against the domain snapshot and constraint
// configuration. It is stateless and reentrant: all mutable search state lives
// in the Board the caller passes in.
type Evaluator struct {
	snap        *models.Snapshot
	blocks      map[string]models.LessonBlock
	weights     models.SoftWeights
	levels      map[models.ConstraintFamily]models.ConstraintLevel
	affairSlots map[models.Slot]bool
	affairLevel models.ConstraintLevel
	subjLimits  map[string]subjectLimit
	defaultMax  int
}

// NewEvaluator validates the constraint configuration and builds an evaluator.
// Unknown rule families fail here, before any search work.
func NewEvaluator(snap *models.Snapshot, blocks []models.LessonBlock, rules []models.ConstraintRule, weights models.SoftWeights) (*Evaluator, error) {
	e := &Evaluator{
		snap:    snap,
		blocks:  make(map[string]models.LessonBlock, len(blocks)),
		weights: weights,
		levels: map[models.ConstraintFamily]models.ConstraintLevel{
			models.FamilyTeacherAvailability:  models.LevelHard,
			models.FamilyRoomConflict:         models.LevelHard,
			models.FamilyClassConflict:        models.LevelHard,
			models.FamilySchoolAffair:         models.LevelHard,
			models.FamilyConsecutiveAdjacency: models.LevelHard,
		},
		affairSlots: make(map[models.Slot]bool),
		affairLevel: models.LevelHard,
		subjLimits:  make(map[string]subjectLimit),
	}
	for _, b := range blocks {
		e.blocks[b.ID] = b
	}
	for _, rule := range rules {
		if !models.KnownFamily(rule.Family) {
			return nil, fmt.Errorf("unknown constraint family %q", rule.Family)
		}
		level := rule.Level
		if level == "" {
			level = models.LevelHard
		}
		if level != models.LevelHard && level != models.LevelSoft {
			return nil, fmt.Errorf("unknown constraint level %q", rule.Level)
		}
		switch rule.Family {
		case models.FamilySchoolAffair:
			for _, slot := range rule.Slots {
				if !snap.Calendar.Contains(slot) {
					return nil, fmt.Errorf("school-affair slot (%d,%d) outside calendar", slot.Day, slot.Period)
				}
				e.affairSlots[slot] = true
			}
			e.affairLevel = level
		case models.FamilySubjectDistribution:
			if rule.MaxPerDay < 1 {
				return nil, fmt.Errorf("subject distribution rule needs maxPerDay >= 1")
			}
			if rule.SubjectID == "" {
				e.defaultMax = rule.MaxPerDay
				e.subjLimits[""] = subjectLimit{maxPerDay: rule.MaxPerDay, level: level}
			} else {
				if _, ok := snap.Subjects[rule.SubjectID]; !ok {
					return nil, fmt.Errorf("subject distribution rule references unknown subject %s", rule.SubjectID)
				}
				e.subjLimits[rule.SubjectID] = subjectLimit{maxPerDay: rule.MaxPerDay, level: level}
			}
		default:
			e.levels[rule.Family] = level
		}
	}
	return e, nil
}

// Block resolves a lesson block the evaluator was built with.
func (e *Evaluator) Block(id string) (models.LessonBlock, bool) {
	b, ok := e.blocks[id]
	return b, ok
}

// Check returns the hard violations introduced by placing the block at the
// slot on the given board. An empty result means the placement is legal.
func (e *Evaluator) Check(board *Board, block models.LessonBlock, at models.Slot) []Violation {
	var hard []Violation
	for _, v := range e.placementViolations(board, block, at) {
		if v.Level == models.LevelHard {
			hard = append(hard, v)
		}
	}
	return hard
}

// Legal reports whether the placement introduces no hard violation.
func (e *Evaluator) Legal(board *Board, block models.LessonBlock, at models.Slot) bool {
	return len(e.Check(board, block, at)) == 0
}

// EvaluateSet scores a complete or partial placement set from scratch: all
// hard violations plus the weighted soft penalty. Used by the host's manual
// placement re-validation and by tests.
func (e *Evaluator) EvaluateSet(placements []models.Placement) ([]Violation, float64, error) {
	ordered := make([]models.Placement, len(placements))
	copy(ordered, placements)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].BlockID < ordered[j].BlockID })

	board := NewBoard(e.snap.Calendar)
	var hard []Violation
	softCount := 0
	for _, p := range ordered {
		block, ok := e.blocks[p.BlockID]
		if !ok {
			return nil, 0, fmt.Errorf("placement references unknown block %s", p.BlockID)
		}
		for _, v := range e.placementViolations(board, block, p.At) {
			if v.Level == models.LevelHard {
				hard = append(hard, v)
			} else {
				softCount++
			}
		}
		board.Place(block, p.At)
	}
	sort.SliceStable(hard, func(i, j int) bool {
		if hard[i].At != hard[j].At {
			return hard[i].At.Before(hard[j].At)
		}
		return hard[i].BlockID < hard[j].BlockID
	})
	penalty := e.Penalty(board) + softLevelUnit*float64(softCount)
	return hard, penalty, nil
}

// placementViolations lists every rule the placement would break, tagged with
// the configured level of its family.
func (e *Evaluator) placementViolations(board *Board, block models.LessonBlock, at models.Slot) []Violation {
	var out []Violation
	if !e.snap.Calendar.Fits(at, block.Span()) {
		return []Violation{{
			Family:  models.FamilyConsecutiveAdjacency,
			Level:   e.levels[models.FamilyConsecutiveAdjacency],
			BlockID: block.ID,
			At:      at,
			Reason:  fmt.Sprintf("%d連続コマが時間割の範囲に収まりません", block.Span()),
		}}
	}
	for _, slot := range Cover(block, at) {
		if e.affairSlots[slot] {
			out = append(out, Violation{
				Family:  models.FamilySchoolAffair,
				Level:   e.affairLevel,
				BlockID: block.ID,
				At:      slot,
				Reason:  "校務の時間帯と重なっています",
			})
		}
		for _, classID := range block.ClassIDs {
			for _, holder := range board.ClassHolders(classID, slot) {
				if holder == block.ID {
					continue
				}
				out = append(out, Violation{
					Family:    models.FamilyClassConflict,
					Level:     e.levels[models.FamilyClassConflict],
					BlockID:   block.ID,
					EntityIDs: []string{classID, holder},
					At:        slot,
					Reason:    fmt.Sprintf("クラス %s は同時刻に別の授業があります", e.className(classID)),
				})
			}
			if class, ok := e.snap.Classes[classID]; ok && !class.Availability.CanUse(slot) {
				out = append(out, Violation{
					Family:    models.FamilyClassConflict,
					Level:     e.levels[models.FamilyClassConflict],
					BlockID:   block.ID,
					EntityIDs: []string{classID},
					At:        slot,
					Reason:    fmt.Sprintf("クラス %s はこの時間帯に授業できません", e.className(classID)),
				})
			}
		}
		for _, teacherID := range block.TeacherIDs() {
			for _, holder := range board.TeacherHolders(teacherID, slot) {
				if holder == block.ID {
					continue
				}
				out = append(out, Violation{
					Family:    models.FamilyTeacherAvailability,
					Level:     e.levels[models.FamilyTeacherAvailability],
					BlockID:   block.ID,
					EntityIDs: []string{teacherID, holder},
					At:        slot,
					Reason:    fmt.Sprintf("%s 先生は同時刻に別の授業があります", e.teacherName(teacherID)),
				})
			}
			if teacher, ok := e.snap.Teachers[teacherID]; ok && !teacher.Availability.CanUse(slot) {
				out = append(out, Violation{
					Family:    models.FamilyTeacherAvailability,
					Level:     e.levels[models.FamilyTeacherAvailability],
					BlockID:   block.ID,
					EntityIDs: []string{teacherID},
					At:        slot,
					Reason:    fmt.Sprintf("%s 先生はこの時間帯に対応できません", e.teacherName(teacherID)),
				})
			}
		}
		for _, roomID := range block.RoomIDs {
			room, known := e.snap.Rooms[roomID]
			if !known || !room.Shared {
				for _, holder := range board.RoomHolders(roomID, slot) {
					if holder == block.ID {
						continue
					}
					out = append(out, Violation{
						Family:    models.FamilyRoomConflict,
						Level:     e.levels[models.FamilyRoomConflict],
						BlockID:   block.ID,
						EntityIDs: []string{roomID, holder},
						At:        slot,
						Reason:    fmt.Sprintf("教室 %s は同時刻に使用中です", e.roomName(roomID)),
					})
				}
			}
			if known && !room.Availability.CanUse(slot) {
				out = append(out, Violation{
					Family:    models.FamilyRoomConflict,
					Level:     e.levels[models.FamilyRoomConflict],
					BlockID:   block.ID,
					EntityIDs: []string{roomID},
					At:        slot,
					Reason:    fmt.Sprintf("教室 %s はこの時間帯に使用できません", e.roomName(roomID)),
				})
			}
		}
	}
	if limit, ok := e.limitFor(block.SubjectID); ok {
		span := block.Span()
		for _, classID := range block.ClassIDs {
			if board.SubjectCount(classID, block.SubjectID, at.Day)+span > limit.maxPerDay {
				out = append(out, Violation{
					Family:    models.FamilySubjectDistribution,
					Level:     limit.level,
					BlockID:   block.ID,
					EntityIDs: []string{classID, block.SubjectID},
					At:        at,
					Reason:    fmt.Sprintf("同一教科の1日あたり上限 (%d) を超えます", limit.maxPerDay),
				})
			}
		}
	}
	return out
}

func (e *Evaluator) limitFor(subjectID string) (subjectLimit, bool) {
	if limit, ok := e.subjLimits[subjectID]; ok {
		return limit, true
	}
	limit, ok := e.subjLimits[""]
	return limit, ok
}

// Penalty computes the weighted soft score of the board. Each component
// accumulates an integer count so the sum is independent of iteration order.
func (e *Evaluator) Penalty(board *Board) float64 {
	w := e.weights
	penalty := 0.0
	penalty += w.TeacherLoadBalance * float64(e.teacherSpread(board))
	penalty += w.SubjectDistribution * float64(e.subjectExcess(board))
	penalty += w.ClassGap * float64(e.gapCount(board.classes, board.cal))
	penalty += w.RoomUtilization * float64(e.gapCount(board.rooms, board.cal))
	penalty -= w.PreferredSlot * float64(e.preferredHits(board))
	return penalty
}

// teacherSpread sums, per loaded teacher, the difference between the heaviest
// and lightest day.
func (e *Evaluator) teacherSpread(board *Board) int {
	total := 0
	for teacherID := range board.teachers {
		maxLoad, minLoad := 0, int(^uint(0)>>1)
		weekly := 0
		for day := 0; day < board.cal.DaysPerWeek; day++ {
			load := board.TeacherDayLoad(teacherID, day)
			weekly += load
			if load > maxLoad {
				maxLoad = load
			}
			if load < minLoad {
				minLoad = load
			}
		}
		if weekly > 0 {
			total += maxLoad - minLoad
		}
	}
	return total
}

// subjectExcess counts same-subject repeats within a class day beyond the
// soft default of one occurrence (hard limits are handled at placement time).
func (e *Evaluator) subjectExcess(board *Board) int {
	total := 0
	for key, count := range board.subjectDay {
		if limit, ok := e.subjLimits[key.SubjectID]; ok && limit.level == models.LevelHard {
			continue
		}
		if count > 1 {
			total += count - 1
		}
	}
	return total
}

// gapCount counts idle holes between the first and last occupied period of
// each entity's day.
func (e *Evaluator) gapCount(index map[string]map[models.Slot][]string, cal models.Calendar) int {
	total := 0
	for _, slots := range index {
		for day := 0; day < cal.DaysPerWeek; day++ {
			first, last, used := -1, -1, 0
			for period := 0; period < cal.PeriodsPerDay; period++ {
				if _, ok := slots[models.Slot{Day: day, Period: period}]; ok {
					if first < 0 {
						first = period
					}
					last = period
					used++
				}
			}
			if used > 1 {
				total += (last - first + 1) - used
			}
		}
	}
	return total
}

// preferredHits counts covered slots landing on a teacher's preferred time.
func (e *Evaluator) preferredHits(board *Board) int {
	total := 0
	for _, p := range board.placements {
		block, ok := e.blocks[p.BlockID]
		if !ok {
			continue
		}
		for _, slot := range Cover(block, p.At) {
			for _, teacherID := range block.TeacherIDs() {
				if teacher, ok := e.snap.Teachers[teacherID]; ok && teacher.Availability.Prefers(slot) {
					total++
				}
			}
		}
	}
	return total
}

func (e *Evaluator) teacherName(id string) string {
	if t, ok := e.snap.Teachers[id]; ok && t.Name != "" {
		return t.Name
	}
	return id
}

func (e *Evaluator) className(id string) string {
	if c, ok := e.snap.Classes[id]; ok && c.Name != "" {
		return c.Name
	}
	return id
}

func (e *Evaluator) roomName(id string) string {
	if r, ok := e.snap.Rooms[id]; ok && r.Name != "" {
		return r.Name
	}
	return id
}
