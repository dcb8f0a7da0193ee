package scoring

import (
	"fmt"
	"sort"

	"github.com/noah-isme/jikanwari-engine/internal/models"
)

// SupervisorRequest describes one exam slot needing a supervising teacher.
// AssignedCounts carries each teacher's existing supervision count across the
// exam period so assignments stay balanced.
type SupervisorRequest struct {
	At             models.Slot
	SubjectID      string
	AssignedCounts map[string]int
	Current        []models.Placement
	Blocks         []models.LessonBlock
	Weights        FeatureWeights
	TopK           int
}

// RankSupervisors ranks teachers for the exam slot. Unavailable teachers and
// teachers already teaching at the slot are excluded.
func RankSupervisors(snap *models.Snapshot, req SupervisorRequest) ([]ScoredCandidate, error) {
	if !snap.Calendar.Contains(req.At) {
		return nil, fmt.Errorf("slot (%d,%d) outside calendar", req.At.Day, req.At.Period)
	}
	busy, _ := teacherOccupancy(req.Current, req.Blocks)

	ids := make([]string, 0, len(snap.Teachers))
	for id := range snap.Teachers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var ranked []ScoredCandidate
	for _, id := range ids {
		teacher := snap.Teachers[id]
		if !teacher.Availability.CanUse(req.At) {
			continue
		}
		if busy[teacherSlot{TeacherID: id, At: req.At}] {
			continue
		}

		features := []feature{
			{reason: ReasonAvailable, value: req.Weights.Availability},
			{reason: ReasonAssignedCount, value: -req.Weights.Load * float64(req.AssignedCounts[id])},
		}
		if teacher.TeachesSubject(req.SubjectID) {
			features = append(features, feature{reason: ReasonSameSubject, value: req.Weights.SubjectMatch})
		} else if len(teacher.SubjectIDs) > 0 {
			// Teaching staff get a small edge over non-teaching candidates.
			features = append(features, feature{reason: ReasonSubjectStaff, value: req.Weights.SubjectMatch / 4})
		}
		if teacher.Availability.Prefers(req.At) {
			features = append(features, feature{reason: ReasonPreferredSlot, value: req.Weights.Availability})
		}

		score, reasons := compose(features)
		ranked = append(ranked, ScoredCandidate{ID: id, Score: score, Feasible: true, Reasons: reasons})
	}
	return order(ranked, req.TopK), nil
}
