package solver

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/jikanwari-engine/internal/engine/constraint"
	"github.com/noah-isme/jikanwari-engine/internal/models"
)

func TestSolveFillsFullWeekAroundUnavailability(t *testing.T) {
	// One class, five subjects, 30 occurrences on a 5x6 grid: a perfect
	// packing. The math teacher cannot teach Monday periods 0 and 1.
	snap, blocks := fullWeekFixture(t)

	result, err := Solve(context.Background(), snap, blocks, nil, Config{
		Timeout:     5 * time.Second,
		MaxPatterns: 1,
		RandomSeed:  42,
	})
	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)

	cand := result.Candidates[0]
	require.Len(t, cand.Placements, len(blocks))

	blockByID := make(map[string]models.LessonBlock, len(blocks))
	for _, b := range blocks {
		blockByID[b.ID] = b
	}
	usedSlots := make(map[models.Slot]string)
	for _, p := range cand.Placements {
		b := blockByID[p.BlockID]
		require.True(t, snap.Calendar.Fits(p.At, b.Span()), "placement outside calendar")
		if b.SubjectID == "math" {
			onBlockedSlot := p.At.Day == 0 && p.At.Period <= 1
			assert.False(t, onBlockedSlot, "math scheduled while its teacher is unavailable")
		}
		holder, taken := usedSlots[p.At]
		assert.False(t, taken, "slot shared by %s and %s", holder, p.BlockID)
		usedSlots[p.At] = p.BlockID
	}

	// The ranked candidate must survive a from-scratch re-evaluation.
	eval, err := constraint.NewEvaluator(snap, blocks, nil, models.DefaultSoftWeights())
	require.NoError(t, err)
	hard, _, err := eval.EvaluateSet(cand.Placements)
	require.NoError(t, err)
	assert.Empty(t, hard)
}

func TestSolveIsDeterministicForSeed(t *testing.T) {
	snap, blocks := fullWeekFixture(t)
	cfg := Config{Timeout: 5 * time.Second, MaxPatterns: 3, RandomSeed: 7}

	first, err := Solve(context.Background(), snap, blocks, nil, cfg)
	require.NoError(t, err)
	second, err := Solve(context.Background(), snap, blocks, nil, cfg)
	require.NoError(t, err)

	require.Equal(t, len(first.Candidates), len(second.Candidates))
	for i := range first.Candidates {
		assert.Equal(t, first.Candidates[i].Placements, second.Candidates[i].Placements)
		assert.Equal(t, first.Candidates[i].Penalty, second.Candidates[i].Penalty)
	}
}

func TestSolveKeepsConsecutiveBlockAtomic(t *testing.T) {
	snap := smallSnapshot(t, 5, 6)
	blocks := []models.LessonBlock{
		{ID: "pair", SubjectID: "math", Kind: models.BlockConsecutive, Length: 2,
			ClassIDs: []string{"c1"},
			Teachers: []models.BlockTeacher{{TeacherID: "t1", Role: models.RoleMain}}},
		{ID: "single", SubjectID: "sci", Kind: models.BlockNormal, Length: 1,
			ClassIDs: []string{"c1"},
			Teachers: []models.BlockTeacher{{TeacherID: "t2", Role: models.RoleMain}}},
	}

	result, err := Solve(context.Background(), snap, blocks, nil, Config{
		Timeout: time.Second, MaxPatterns: 1,
	})
	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)

	var pairAt models.Slot
	found := false
	for _, p := range result.Candidates[0].Placements {
		if p.BlockID == "pair" {
			pairAt, found = p.At, true
		}
	}
	require.True(t, found, "pair block missing from the candidate")

	covered := constraint.Cover(blocks[0], pairAt)
	require.Len(t, covered, 2, "a length-2 block covers two periods")
	assert.Equal(t, covered[0].Day, covered[1].Day, "consecutive pair must stay inside one day")
	assert.Equal(t, covered[0].Period+1, covered[1].Period, "consecutive pair must occupy adjacent periods")
	for _, slot := range covered {
		assert.True(t, snap.Calendar.Contains(slot), "covered slot (%d,%d) outside the grid", slot.Day, slot.Period)
	}
}

func TestSolveRanksCandidatesByPenalty(t *testing.T) {
	snap, blocks := fullWeekFixture(t)
	result, err := Solve(context.Background(), snap, blocks, nil, Config{
		Timeout: 5 * time.Second, MaxPatterns: 5, RandomSeed: 3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Candidates)
	assert.LessOrEqual(t, len(result.Candidates), 5)

	for i := 1; i < len(result.Candidates); i++ {
		assert.LessOrEqual(t, result.Candidates[i-1].Penalty, result.Candidates[i].Penalty)
	}
	sigs := make(map[string]bool)
	for _, cand := range result.Candidates {
		sig := fmt.Sprint(cand.Placements)
		assert.False(t, sigs[sig], "duplicate candidate returned")
		sigs[sig] = true
	}
}

func TestSolveInfeasible(t *testing.T) {
	snap := smallSnapshot(t, 1, 1)
	blocks := []models.LessonBlock{
		{ID: "b1", SubjectID: "math", ClassIDs: []string{"c1"},
			Teachers: []models.BlockTeacher{{TeacherID: "t1", Role: models.RoleMain}}},
		{ID: "b2", SubjectID: "sci", ClassIDs: []string{"c1"},
			Teachers: []models.BlockTeacher{{TeacherID: "t2", Role: models.RoleMain}}},
	}

	_, err := Solve(context.Background(), snap, blocks, nil, Config{
		Timeout: time.Second, MaxPatterns: 1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInfeasible))
}

func TestSolveValidatesInput(t *testing.T) {
	snap := smallSnapshot(t, 5, 6)
	blocks := []models.LessonBlock{
		{ID: "b1", SubjectID: "math", ClassIDs: []string{"c1"},
			Teachers: []models.BlockTeacher{{TeacherID: "t1", Role: models.RoleMain}}},
	}

	_, err := Solve(context.Background(), nil, blocks, nil, Config{MaxPatterns: 1})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Solve(context.Background(), snap, nil, nil, Config{MaxPatterns: 1})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Solve(context.Background(), snap, blocks, nil, Config{MaxPatterns: 0})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	dangling := []models.LessonBlock{{ID: "b1", SubjectID: "ghost", ClassIDs: []string{"c1"}}}
	_, err = Solve(context.Background(), snap, dangling, nil, Config{MaxPatterns: 1})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	badRule := []models.ConstraintRule{{Family: "lunch_break"}}
	_, err = Solve(context.Background(), snap, blocks, badRule, Config{MaxPatterns: 1})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestSolveCancellation(t *testing.T) {
	snap, blocks := fullWeekFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Solve(ctx, snap, blocks, nil, Config{MaxPatterns: 3})
	require.NoError(t, err, "cancellation is a degraded result, not an error")
	assert.True(t, result.Cancelled)
	assert.Empty(t, result.Candidates)
}

// --- Fixtures ---

func smallSnapshot(t *testing.T, days, periods int) *models.Snapshot {
	t.Helper()
	snap, err := models.NewSnapshot(
		models.Calendar{DaysPerWeek: days, PeriodsPerDay: periods},
		[]models.Subject{{ID: "math"}, {ID: "sci"}},
		[]models.Teacher{{ID: "t1", SubjectIDs: []string{"math"}}, {ID: "t2", SubjectIDs: []string{"sci"}}},
		nil,
		[]models.Class{{ID: "c1"}},
		nil,
	)
	require.NoError(t, err)
	return snap
}

// fullWeekFixture builds one class with 30 weekly occurrences across five
// subjects, exactly filling a 5x6 grid. Each subject has its own teacher and
// the math teacher is unavailable Monday periods 0 and 1.
func fullWeekFixture(t *testing.T) (*models.Snapshot, []models.LessonBlock) {
	t.Helper()
	subjectIDs := []string{"math", "jpn", "eng", "sci", "soc"}
	subjects := make([]models.Subject, 0, len(subjectIDs))
	teachers := make([]models.Teacher, 0, len(subjectIDs))
	for _, id := range subjectIDs {
		subjects = append(subjects, models.Subject{ID: id})
		teacher := models.Teacher{ID: "t-" + id, SubjectIDs: []string{id}}
		if id == "math" {
			teacher.Availability = models.AvailabilityMap{
				{Day: 0, Period: 0}: models.StateUnavailable,
				{Day: 0, Period: 1}: models.StateUnavailable,
			}
		}
		teachers = append(teachers, teacher)
	}

	snap, err := models.NewSnapshot(
		models.Calendar{DaysPerWeek: 5, PeriodsPerDay: 6},
		subjects, teachers, nil,
		[]models.Class{{ID: "c1"}},
		nil,
	)
	require.NoError(t, err)

	var blocks []models.LessonBlock
	for _, id := range subjectIDs {
		for i := 0; i < 6; i++ {
			blocks = append(blocks, models.LessonBlock{
				ID:        fmt.Sprintf("%s-%d", id, i),
				SubjectID: id,
				Kind:      models.BlockNormal,
				Length:    1,
				ClassIDs:  []string{"c1"},
				Teachers:  []models.BlockTeacher{{TeacherID: "t-" + id, Role: models.RoleMain}},
			})
		}
	}
	return snap, blocks
}
