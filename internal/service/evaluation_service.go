package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/jikanwari-engine/internal/dto"
	"github.com/noah-isme/jikanwari-engine/internal/engine/constraint"
	"github.com/noah-isme/jikanwari-engine/internal/models"
	appErrors "github.com/noah-isme/jikanwari-engine/pkg/errors"
)

// EvaluationService re-validates host-constructed placements (manual edits in
// the drag-and-drop grid) without running a full solve.
type EvaluationService struct {
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEvaluationService wires the evaluator dependencies.
func NewEvaluationService(validate *validator.Validate, logger *zap.Logger) *EvaluationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationService{validator: validate, logger: logger}
}

// Evaluate reports hard violations and the weighted soft penalty of the
// placement set.
func (s *EvaluationService) Evaluate(req dto.EvaluateRequest) (*dto.EvaluateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid evaluate payload")
	}
	snap, err := req.Snapshot.ToModel()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid domain snapshot")
	}
	blocks := make([]models.LessonBlock, 0, len(req.Blocks))
	for _, b := range req.Blocks {
		blocks = append(blocks, b.ToModel())
	}
	if err := snap.ValidateBlocks(blocks); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid lesson blocks")
	}
	rules := make([]models.ConstraintRule, 0, len(req.Rules))
	for _, r := range req.Rules {
		rules = append(rules, r.ToModel())
	}
	weights := models.DefaultSoftWeights()
	if req.Weights != nil {
		weights = req.Weights.ToModel()
	}

	eval, err := constraint.NewEvaluator(snap, blocks, rules, weights)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid constraint configuration")
	}
	placements := make([]models.Placement, 0, len(req.Placements))
	for _, p := range req.Placements {
		placements = append(placements, p.ToModel())
	}
	violations, penalty, err := eval.EvaluateSet(placements)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid placement set")
	}

	resp := &dto.EvaluateResponse{
		Violations:  make([]dto.ViolationPayload, 0, len(violations)),
		SoftPenalty: penalty,
		Feasible:    len(violations) == 0,
	}
	for _, v := range violations {
		resp.Violations = append(resp.Violations, dto.ViolationPayload{
			Family:    string(v.Family),
			Level:     string(v.Level),
			BlockID:   v.BlockID,
			EntityIDs: v.EntityIDs,
			Day:       v.At.Day,
			Period:    v.At.Period,
			Reason:    v.Reason,
		})
	}
	return resp, nil
}
