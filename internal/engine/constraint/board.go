package constraint

import (
	"sort"

	"github.com/noah-isme/jikanwari-engine/internal/models"
)

type entityDay struct {
	ID  string
	Day int
}

type classSubjectDay struct {
	ClassID   string
	SubjectID string
	Day       int
}

// Board is the mutable occupancy state a search owns. The evaluator reads it
// but never stores it, so independent searches can each keep a private board.
type Board struct {
	cal        models.Calendar
	classes    map[string]map[models.Slot][]string
	teachers   map[string]map[models.Slot][]string
	rooms      map[string]map[models.Slot][]string
	placements map[string]models.Placement
	teacherDay map[entityDay]int
	subjectDay map[classSubjectDay]int
}

// NewBoard returns an empty board for the calendar.
func NewBoard(cal models.Calendar) *Board {
	return &Board{
		cal:        cal,
		classes:    make(map[string]map[models.Slot][]string),
		teachers:   make(map[string]map[models.Slot][]string),
		rooms:      make(map[string]map[models.Slot][]string),
		placements: make(map[string]models.Placement),
		teacherDay: make(map[entityDay]int),
		subjectDay: make(map[classSubjectDay]int),
	}
}

// Cover enumerates the slots a block placed at `at` occupies.
func Cover(block models.LessonBlock, at models.Slot) []models.Slot {
	span := block.Span()
	slots := make([]models.Slot, 0, span)
	for i := 0; i < span; i++ {
		slots = append(slots, models.Slot{Day: at.Day, Period: at.Period + i})
	}
	return slots
}

// Place records the block occupancy. A slot may hold several blocks at once;
// soft-configured conflict rules let overlapping placements coexist, so each
// index keeps every holder, not just the latest.
func (b *Board) Place(block models.LessonBlock, at models.Slot) {
	for _, slot := range Cover(block, at) {
		for _, classID := range block.ClassIDs {
			occupy(b.classes, classID, slot, block.ID)
			b.subjectDay[classSubjectDay{ClassID: classID, SubjectID: block.SubjectID, Day: slot.Day}]++
		}
		for _, teacherID := range block.TeacherIDs() {
			occupy(b.teachers, teacherID, slot, block.ID)
			b.teacherDay[entityDay{ID: teacherID, Day: slot.Day}]++
		}
		for _, roomID := range block.RoomIDs {
			occupy(b.rooms, roomID, slot, block.ID)
		}
	}
	b.placements[block.ID] = models.Placement{BlockID: block.ID, At: at}
}

// Remove undoes a Place of the same block at the same slot. Only this block's
// share of each occupancy is released; overlapping holders stay recorded.
func (b *Board) Remove(block models.LessonBlock, at models.Slot) {
	for _, slot := range Cover(block, at) {
		for _, classID := range block.ClassIDs {
			release(b.classes, classID, slot, block.ID)
			key := classSubjectDay{ClassID: classID, SubjectID: block.SubjectID, Day: slot.Day}
			if b.subjectDay[key] > 0 {
				b.subjectDay[key]--
			}
		}
		for _, teacherID := range block.TeacherIDs() {
			release(b.teachers, teacherID, slot, block.ID)
			key := entityDay{ID: teacherID, Day: slot.Day}
			if b.teacherDay[key] > 0 {
				b.teacherDay[key]--
			}
		}
		for _, roomID := range block.RoomIDs {
			release(b.rooms, roomID, slot, block.ID)
		}
	}
	delete(b.placements, block.ID)
}

// ClassHolders returns the blocks holding the class at the slot.
func (b *Board) ClassHolders(classID string, slot models.Slot) []string {
	return holders(b.classes, classID, slot)
}

// TeacherHolders returns the blocks holding the teacher at the slot.
func (b *Board) TeacherHolders(teacherID string, slot models.Slot) []string {
	return holders(b.teachers, teacherID, slot)
}

// RoomHolders returns the blocks holding the room at the slot.
func (b *Board) RoomHolders(roomID string, slot models.Slot) []string {
	return holders(b.rooms, roomID, slot)
}

// SubjectCount returns how often the subject already occurs for the class on
// the day.
func (b *Board) SubjectCount(classID, subjectID string, day int) int {
	return b.subjectDay[classSubjectDay{ClassID: classID, SubjectID: subjectID, Day: day}]
}

// TeacherDayLoad returns the number of periods the teacher holds on the day.
func (b *Board) TeacherDayLoad(teacherID string, day int) int {
	return b.teacherDay[entityDay{ID: teacherID, Day: day}]
}

// Placements returns the current assignment sorted by block id.
func (b *Board) Placements() []models.Placement {
	out := make([]models.Placement, 0, len(b.placements))
	for _, p := range b.placements {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BlockID < out[j].BlockID })
	return out
}

func occupy(index map[string]map[models.Slot][]string, id string, slot models.Slot, blockID string) {
	if index[id] == nil {
		index[id] = make(map[models.Slot][]string)
	}
	index[id][slot] = append(index[id][slot], blockID)
}

func release(index map[string]map[models.Slot][]string, id string, slot models.Slot, blockID string) {
	held := index[id][slot]
	for i, holder := range held {
		if holder == blockID {
			held = append(held[:i], held[i+1:]...)
			break
		}
	}
	if len(held) == 0 {
		delete(index[id], slot)
		return
	}
	index[id][slot] = held
}

func holders(index map[string]map[models.Slot][]string, id string, slot models.Slot) []string {
	if index[id] == nil {
		return nil
	}
	return index[id][slot]
}
