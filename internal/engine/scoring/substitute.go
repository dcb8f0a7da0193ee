package scoring

import (
	"fmt"
	"sort"

	"github.com/noah-isme/jikanwari-engine/internal/models"
)

// SubstituteRequest describes a cancelled lesson occurrence needing cover.
// Current carries the week's placements so load and clashes reflect the live
// timetable.
type SubstituteRequest struct {
	At              models.Slot
	SubjectID       string
	ClassIDs        []string
	AbsentTeacherID string
	Current         []models.Placement
	Blocks          []models.LessonBlock
	RecentCoverDays map[string]int
	Weights         FeatureWeights
	TopK            int
}

// RankSubstitutes ranks the snapshot's teachers for covering the cancelled
// occurrence. Teachers who are unavailable, already teaching at the slot, or
// the absentee themselves are excluded, not down-ranked.
func RankSubstitutes(snap *models.Snapshot, req SubstituteRequest) ([]ScoredCandidate, error) {
	if !snap.Calendar.Contains(req.At) {
		return nil, fmt.Errorf("slot (%d,%d) outside calendar", req.At.Day, req.At.Period)
	}
	busy, weekly := teacherOccupancy(req.Current, req.Blocks)

	ids := make([]string, 0, len(snap.Teachers))
	for id := range snap.Teachers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var ranked []ScoredCandidate
	for _, id := range ids {
		teacher := snap.Teachers[id]
		if id == req.AbsentTeacherID {
			continue
		}
		if !teacher.Availability.CanUse(req.At) {
			continue
		}
		if busy[teacherSlot{TeacherID: id, At: req.At}] {
			continue
		}

		features := []feature{
			{reason: ReasonAvailable, value: req.Weights.Availability},
			{reason: ReasonCurrentLoad, value: -req.Weights.Load * float64(weekly[id])},
		}
		if teacher.TeachesSubject(req.SubjectID) {
			features = append(features, feature{reason: ReasonSameSubject, value: req.Weights.SubjectMatch})
		}
		if teacher.Availability.Prefers(req.At) {
			features = append(features, feature{reason: ReasonPreferredSlot, value: req.Weights.Availability})
		}
		if days, ok := req.RecentCoverDays[id]; ok && days >= 0 {
			features = append(features, feature{reason: ReasonRecentCover, value: -req.Weights.Recency / float64(days+1)})
		}
		if gradeMatch(snap, teacher, req.ClassIDs) {
			features = append(features, feature{reason: ReasonGradeMatch, value: req.Weights.GradeMatch})
		}

		score, reasons := compose(features)
		ranked = append(ranked, ScoredCandidate{ID: id, Score: score, Feasible: true, Reasons: reasons})
	}
	return order(ranked, req.TopK), nil
}

type teacherSlot struct {
	TeacherID string
	At        models.Slot
}

// teacherOccupancy derives per-slot busyness and weekly load from the current
// placements.
func teacherOccupancy(placements []models.Placement, blocks []models.LessonBlock) (map[teacherSlot]bool, map[string]int) {
	byID := make(map[string]models.LessonBlock, len(blocks))
	for _, b := range blocks {
		byID[b.ID] = b
	}
	busy := make(map[teacherSlot]bool)
	weekly := make(map[string]int)
	for _, p := range placements {
		block, ok := byID[p.BlockID]
		if !ok {
			continue
		}
		span := block.Span()
		for _, teacherID := range block.TeacherIDs() {
			for i := 0; i < span; i++ {
				busy[teacherSlot{TeacherID: teacherID, At: models.Slot{Day: p.At.Day, Period: p.At.Period + i}}] = true
			}
			weekly[teacherID] += span
		}
	}
	return busy, weekly
}

func gradeMatch(snap *models.Snapshot, teacher models.Teacher, classIDs []string) bool {
	for _, classID := range classIDs {
		if gradeID := snap.GradeOf(classID); gradeID != "" && teacher.CoversGrade(gradeID) {
			return true
		}
	}
	return false
}
