package scoring

import (
	"fmt"

	"github.com/noah-isme/jikanwari-engine/internal/engine/constraint"
	"github.com/noah-isme/jikanwari-engine/internal/models"
)

// RescheduleRequest asks for ranked destination slots for moving a cancelled
// lesson occurrence.
type RescheduleRequest struct {
	BlockID string
	From    models.Slot
	Current []models.Placement
	Blocks  []models.LessonBlock
	Rules   []models.ConstraintRule
	Weights models.SoftWeights
	TopK    int
}

// RankRescheduleSlots ranks the free slots the block could move to. Slots
// breaking a hard constraint are excluded; the rest are scored by how much
// the move compacts the week (soft penalty delta).
func RankRescheduleSlots(snap *models.Snapshot, req RescheduleRequest) ([]ScoredCandidate, error) {
	eval, err := constraint.NewEvaluator(snap, req.Blocks, req.Rules, req.Weights)
	if err != nil {
		return nil, err
	}
	block, ok := eval.Block(req.BlockID)
	if !ok {
		return nil, fmt.Errorf("unknown lesson block %s", req.BlockID)
	}

	// Rebuild the week without the moving block.
	board := constraint.NewBoard(snap.Calendar)
	for _, p := range req.Current {
		if p.BlockID == req.BlockID {
			continue
		}
		other, ok := eval.Block(p.BlockID)
		if !ok {
			return nil, fmt.Errorf("placement references unknown block %s", p.BlockID)
		}
		board.Place(other, p.At)
	}
	base := eval.Penalty(board)

	var ranked []ScoredCandidate
	for _, slot := range snap.Calendar.Slots() {
		if slot == req.From || !snap.Calendar.Fits(slot, block.Span()) {
			continue
		}
		if !eval.Legal(board, block, slot) {
			continue
		}
		board.Place(block, slot)
		delta := eval.Penalty(board) - base
		board.Remove(block, slot)

		features := []feature{
			{reason: ReasonFreeSlot, value: 1.0},
			{reason: ReasonCompaction, value: -delta},
		}
		score, reasons := compose(features)
		ranked = append(ranked, ScoredCandidate{
			ID:       fmt.Sprintf("%d-%d", slot.Day, slot.Period),
			Score:    score,
			Feasible: true,
			Reasons:  reasons,
		})
	}
	return order(ranked, req.TopK), nil
}
