package solver

import (
	"context"
	"math/rand"
	"sort"

	"github.com/noah-isme/jikanwari-engine/internal/engine/constraint"
	"github.com/noah-isme/jikanwari-engine/internal/models"
)

// search holds the state of one backtracking run. Each restart owns a private
// search, so parallel invocations never share mutable state.
type search struct {
	ctx     context.Context
	snap    *models.Snapshot
	eval    *constraint.Evaluator
	board   *constraint.Board
	rng     *rand.Rand
	nodes   int64
	aborted bool
}

// run places every block or reports failure. Cancellation is checked at each
// node so a stop request unwinds promptly.
func (s *search) run(unplaced []models.LessonBlock) bool {
	if len(unplaced) == 0 {
		return true
	}
	s.nodes++
	if s.ctx.Err() != nil {
		s.aborted = true
		return false
	}

	idx, legal := s.mostConstrained(unplaced)
	if idx < 0 {
		return false
	}
	block := unplaced[idx]
	rest := make([]models.LessonBlock, 0, len(unplaced)-1)
	rest = append(rest, unplaced[:idx]...)
	rest = append(rest, unplaced[idx+1:]...)

	for _, slot := range s.orderSlots(block, legal) {
		s.board.Place(block, slot)
		if s.run(rest) {
			return true
		}
		s.board.Remove(block, slot)
		if s.aborted {
			return false
		}
	}
	return false
}

// mostConstrained picks the unplaced block with the fewest legal slots; ties
// go to the largest participant set, then to id order for reproducibility.
// Returns -1 when some block has no legal slot at all.
func (s *search) mostConstrained(unplaced []models.LessonBlock) (int, []models.Slot) {
	bestIdx := -1
	var bestLegal []models.Slot
	for i, block := range unplaced {
		legal := s.legalSlots(block)
		if len(legal) == 0 {
			return -1, nil
		}
		if bestIdx < 0 ||
			len(legal) < len(bestLegal) ||
			(len(legal) == len(bestLegal) && block.ParticipantCount() > unplaced[bestIdx].ParticipantCount()) {
			bestIdx = i
			bestLegal = legal
		}
	}
	return bestIdx, bestLegal
}

func (s *search) legalSlots(block models.LessonBlock) []models.Slot {
	span := block.Span()
	var legal []models.Slot
	for day := 0; day < s.snap.Calendar.DaysPerWeek; day++ {
		for period := 0; period+span <= s.snap.Calendar.PeriodsPerDay; period++ {
			slot := models.Slot{Day: day, Period: period}
			if s.eval.Legal(s.board, block, slot) {
				legal = append(legal, slot)
			}
		}
	}
	return legal
}

// slotChoice pairs a candidate slot with the soft penalty the placement would
// add and a random tie-break key; the key is what perturbs restarts.
type slotChoice struct {
	slot    models.Slot
	delta   float64
	shuffle int
}

func (s *search) orderSlots(block models.LessonBlock, legal []models.Slot) []models.Slot {
	base := s.eval.Penalty(s.board)
	choices := make([]slotChoice, 0, len(legal))
	for _, slot := range legal {
		s.board.Place(block, slot)
		delta := s.eval.Penalty(s.board) - base
		s.board.Remove(block, slot)
		choices = append(choices, slotChoice{slot: slot, delta: delta, shuffle: s.rng.Int()})
	}
	sort.Slice(choices, func(i, j int) bool {
		if choices[i].delta != choices[j].delta {
			return choices[i].delta < choices[j].delta
		}
		return choices[i].shuffle < choices[j].shuffle
	})
	ordered := make([]models.Slot, len(choices))
	for i, c := range choices {
		ordered[i] = c.slot
	}
	return ordered
}
