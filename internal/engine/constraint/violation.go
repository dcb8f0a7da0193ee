package constraint

import "github.com/noah-isme/jikanwari-engine/internal/models"

// Violation identifies one broken constraint: the family, the entities
// involved and a human-readable reason surfaced to the suggestion panels.
type Violation struct {
	Family    models.ConstraintFamily `json:"family"`
	Level     models.ConstraintLevel  `json:"level"`
	BlockID   string                  `json:"block_id,omitempty"`
	EntityIDs []string                `json:"entity_ids,omitempty"`
	At        models.Slot             `json:"at"`
	Reason    string                  `json:"reason"`
}
