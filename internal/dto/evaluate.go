package dto

// EvaluateRequest re-validates a placement set the host constructed manually
// without invoking a full solve.
type EvaluateRequest struct {
	Snapshot   SnapshotPayload         `json:"snapshot" validate:"required"`
	Blocks     []LessonBlockPayload    `json:"lessonBlocks" validate:"required,min=1,dive"`
	Rules      []ConstraintRulePayload `json:"constraints" validate:"omitempty,dive"`
	Weights    *SoftWeightsPayload     `json:"weights" validate:"omitempty"`
	Placements []PlacementPayload      `json:"placements" validate:"required,dive"`
}

// ViolationPayload reports one broken hard constraint.
type ViolationPayload struct {
	Family    string   `json:"family"`
	Level     string   `json:"level"`
	BlockID   string   `json:"blockId,omitempty"`
	EntityIDs []string `json:"entityIds,omitempty"`
	Day       int      `json:"day"`
	Period    int      `json:"period"`
	Reason    string   `json:"reason"`
}

// EvaluateResponse pairs hard violations with the weighted soft penalty.
type EvaluateResponse struct {
	Violations  []ViolationPayload `json:"violations"`
	SoftPenalty float64            `json:"softPenalty"`
	Feasible    bool               `json:"feasible"`
}
